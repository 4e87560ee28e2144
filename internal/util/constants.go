package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCSV = "text/csv"
)

// 用户可见的错误文案，"未完成测试" 与 "测试数据异常" 必须区分
const (
	MsgTestNotCompleted = "You have not completed the test yet"
	MsgUserNotFound     = "User not found"
	MsgTestDataProblem  = "Something is wrong with the test data, please contact the administrator"
	MsgFetchFailed      = "Failed to load test data, please try again later"
)
