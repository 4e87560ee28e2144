package scoring

import (
	"fmt"
	"strconv"
)

const (
	QuestionCount     = 7
	ColumnCount       = 8
	PointsPerQuestion = 10
	MaxTotalScore     = QuestionCount * PointsPerQuestion
)

// permutationTable 每道题一行，第 p 个字母表示放在逻辑列 p 上的选项（A 为自然顺序第一个选项）。
// 这是量表的固定答案键，运行期只读。
var permutationTable = [QuestionCount][ColumnCount]byte{
	{'G', 'D', 'F', 'C', 'A', 'H', 'B', 'E'}, // I
	{'A', 'B', 'E', 'G', 'C', 'D', 'F', 'H'}, // II
	{'H', 'A', 'C', 'D', 'F', 'G', 'E', 'B'}, // III
	{'D', 'H', 'B', 'E', 'G', 'C', 'A', 'F'}, // IV
	{'B', 'F', 'D', 'H', 'E', 'A', 'C', 'G'}, // V
	{'F', 'C', 'G', 'A', 'H', 'E', 'B', 'D'}, // VI
	{'E', 'G', 'A', 'F', 'D', 'B', 'H', 'C'}, // VII
}

var romanNumerals = [QuestionCount]string{"I", "II", "III", "IV", "V", "VI", "VII"}

type Option struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"questionId"`
	Order      int    `json:"order"`
	Text       string `json:"text"`
}

type Question struct {
	ID      uint     `json:"id"`
	Order   int      `json:"order"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// PermutationRow 返回第 questionIndex 道题（从 0 开始）的置换行
func PermutationRow(questionIndex int) ([ColumnCount]byte, error) {
	if questionIndex < 0 || questionIndex >= QuestionCount {
		return [ColumnCount]byte{}, &ConfigurationError{
			Reason: fmt.Sprintf("no permutation row for question index %d", questionIndex),
		}
	}
	return permutationTable[questionIndex], nil
}

// QuestionLabel 题目的罗马数字标签，超出范围时退化为数字
func QuestionLabel(questionIndex int) string {
	if questionIndex >= 0 && questionIndex < QuestionCount {
		return romanNumerals[questionIndex]
	}
	return strconv.Itoa(questionIndex + 1)
}

// ResolvePositions 把按自然顺序排列的 8 个选项放到各自的逻辑列上。
// 第 p 列上的选项是 options[row[p]-'A']。
func ResolvePositions(questionIndex int, options []Option) ([ColumnCount]Option, error) {
	var positions [ColumnCount]Option

	if len(options) != ColumnCount {
		return positions, &MalformedQuestionError{
			QuestionIndex: questionIndex,
			OptionCount:   len(options),
			Reason:        fmt.Sprintf("has %d options, want %d", len(options), ColumnCount),
		}
	}

	seen := make(map[uint]struct{}, ColumnCount)
	for _, opt := range options {
		if _, dup := seen[opt.ID]; dup {
			return positions, &MalformedQuestionError{
				QuestionIndex: questionIndex,
				OptionCount:   len(options),
				Reason:        fmt.Sprintf("option %d appears more than once", opt.ID),
			}
		}
		seen[opt.ID] = struct{}{}
	}

	row, err := PermutationRow(questionIndex)
	if err != nil {
		return positions, err
	}

	for p, letter := range row {
		positions[p] = options[letter-'A']
	}
	return positions, nil
}
