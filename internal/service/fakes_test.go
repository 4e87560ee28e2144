package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"task_maturity_backend/internal/model"
	"task_maturity_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUsers struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
	err    error
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]*model.User{}, nextID: 1}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateLastLogin(ctx context.Context, id uint) error {
	return nil
}

func (f *fakeUsers) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var list []model.User
	for i, id := range ids {
		if i >= (page-1)*limit && len(list) < limit {
			list = append(list, *f.users[uint(id)])
		}
	}
	return list, int64(len(ids)), nil
}

func (f *fakeUsers) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUsers) SetCanRetake(ctx context.Context, id uint, allowed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CanRetake = allowed
	return nil
}

// fakeTests 同时充当作答、会话与统计存储
type fakeTests struct {
	mu        sync.Mutex
	sessions  []model.TestSession
	responses []model.UserTestResponse
	err       error
	users     *fakeUsers

	// staleCount 让 CountSessionsByUser 始终返回 0，模拟并发提交时读到的旧状态
	staleCount bool
}

func (f *fakeTests) FindByUser(ctx context.Context, userID uint) ([]model.UserTestResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UserTestResponse
	for _, r := range f.responses {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTests) FindLatestByUser(ctx context.Context, userID uint) (*model.TestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *model.TestSession
	for i := range f.sessions {
		s := f.sessions[i]
		if s.UserID == userID && (latest == nil || s.CompletedAt.After(latest.CompletedAt)) {
			latest = &s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakeTests) CreateSessionWithResponses(ctx context.Context, session *model.TestSession, responses []model.UserTestResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.users != nil {
		taken := 0
		for _, existing := range f.sessions {
			if existing.UserID == session.UserID {
				taken++
			}
		}
		user, err := f.users.FindByID(ctx, session.UserID)
		if err != nil {
			return err
		}
		if taken > 0 && !user.CanRetake {
			return util.ErrTestAlreadySubmitted
		}
	}
	session.ID = model.NewID()
	f.sessions = append(f.sessions, *session)
	for _, r := range responses {
		r.UserID = session.UserID
		r.SessionID = session.ID
		f.responses = append(f.responses, r)
	}
	if f.users != nil {
		f.users.SetCanRetake(ctx, session.UserID, false)
	}
	return nil
}

func (f *fakeTests) ListSessionsByUser(ctx context.Context, userID uint) ([]model.TestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TestSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTests) CountSessionsByUser(ctx context.Context, userID uint) (int64, error) {
	if f.staleCount {
		return 0, nil
	}
	sessions, _ := f.ListSessionsByUser(ctx, userID)
	return int64(len(sessions)), nil
}

func (f *fakeTests) SummariesByUsers(ctx context.Context, userIDs []uint) (map[uint]model.SessionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uint]model.SessionSummary{}
	for _, s := range f.sessions {
		sum := out[s.UserID]
		sum.UserID = s.UserID
		sum.TestCount++
		if s.CompletedAt.After(sum.LastTestDate) {
			sum.LastTestDate = s.CompletedAt
		}
		out[s.UserID] = sum
	}
	return out, nil
}

func (f *fakeTests) CountSessions(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.sessions)), nil
}

func (f *fakeTests) CountUsersWithSessions(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[uint]bool{}
	for _, s := range f.sessions {
		seen[s.UserID] = true
	}
	return int64(len(seen)), nil
}

// addSession 直接写入一次已完成的会话
func (f *fakeTests) addSession(userID uint, id string, at time.Time, responses []model.UserTestResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, model.TestSession{
		UUIDBase:    model.UUIDBase{ID: id},
		UserID:      userID,
		CompletedAt: at,
	})
	for _, r := range responses {
		r.UserID = userID
		r.SessionID = id
		f.responses = append(f.responses, r)
	}
}

type fakeCatalog struct {
	mu        sync.Mutex
	questions []model.TestQuestion
	err       error
	calls     int
}

func (f *fakeCatalog) FindAllWithOptions(ctx context.Context) ([]model.TestQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[uint][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uint][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, userID uint) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.entries[userID]
	return data, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, userID uint, data []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[userID] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.entries, userID)
	return nil
}

type fakeAdmins struct {
	admins map[string]*model.Admin
}

func (f *fakeAdmins) FindByLoginID(ctx context.Context, loginID string) (*model.Admin, error) {
	a, ok := f.admins[loginID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

type fakeUploader struct {
	files map[string][]byte
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", err
	}
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[filename] = buf.Bytes()
	return "/uploads/" + filename, nil
}

// testQuestions 7 道题，题目 ID 为 1..7，选项 ID 为 题号*100+1..8
func testQuestions() []model.TestQuestion {
	questions := make([]model.TestQuestion, 0, 7)
	for q := uint(1); q <= 7; q++ {
		question := model.TestQuestion{
			BaseModel:     model.BaseModel{ID: q},
			QuestionText:  "question",
			QuestionOrder: int(q),
		}
		for o := uint(1); o <= 8; o++ {
			question.Options = append(question.Options, model.TestOption{
				BaseModel:   model.BaseModel{ID: q*100 + o},
				QuestionID:  q,
				OptionText:  "option",
				OptionOrder: int(o),
			})
		}
		questions = append(questions, question)
	}
	return questions
}

// allOnOption 每题 10 分全部给第 n 个自然顺序选项
func allOnOption(n uint) []model.UserTestResponse {
	rows := make([]model.UserTestResponse, 0, 7)
	for q := uint(1); q <= 7; q++ {
		rows = append(rows, model.UserTestResponse{QuestionID: q, OptionID: q*100 + n, Points: 10})
	}
	return rows
}

func allOnOptionInput(n uint) []ResponseInput {
	inputs := make([]ResponseInput, 0, 7)
	for _, r := range allOnOption(n) {
		inputs = append(inputs, ResponseInput{QuestionID: r.QuestionID, OptionID: r.OptionID, Points: r.Points})
	}
	return inputs
}
