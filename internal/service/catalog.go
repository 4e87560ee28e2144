package service

import (
	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/scoring"
)

func toScoringCatalog(questions []model.TestQuestion) []scoring.Question {
	catalog := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		sq := scoring.Question{
			ID:      q.ID,
			Order:   q.QuestionOrder,
			Text:    q.QuestionText,
			Options: make([]scoring.Option, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			sq.Options = append(sq.Options, scoring.Option{
				ID:         o.ID,
				QuestionID: o.QuestionID,
				Order:      o.OptionOrder,
				Text:       o.OptionText,
			})
		}
		catalog = append(catalog, sq)
	}
	return catalog
}

func toScoringResponses(rows []model.UserTestResponse) []scoring.Response {
	responses := make([]scoring.Response, 0, len(rows))
	for _, r := range rows {
		responses = append(responses, scoring.Response{
			QuestionID: r.QuestionID,
			OptionID:   r.OptionID,
			Points:     r.Points,
		})
	}
	return responses
}

// responsesForSession 只保留最近一次会话的作答；没有会话 ID 的历史数据一并保留
func responsesForSession(rows []model.UserTestResponse, sessionID string) []model.UserTestResponse {
	kept := make([]model.UserTestResponse, 0, len(rows))
	for _, r := range rows {
		if r.SessionID == "" || r.SessionID == sessionID {
			kept = append(kept, r)
		}
	}
	return kept
}
