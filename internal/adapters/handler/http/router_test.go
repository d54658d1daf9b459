package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/core/ports/mocks"
)

type RouterSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	votes    *mocks.MockVoteService
	topics   *mocks.MockTopicCatalog
	results  *mocks.MockResultService
	persona  *mocks.MockPersonaService
	users    *mocks.MockUserService
	auth     *mocks.MockAuthService
	identity *mocks.MockIdentityResolver
	router   http.Handler
	userID   uuid.UUID
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.votes = mocks.NewMockVoteService(s.ctrl)
	s.topics = mocks.NewMockTopicCatalog(s.ctrl)
	s.results = mocks.NewMockResultService(s.ctrl)
	s.persona = mocks.NewMockPersonaService(s.ctrl)
	s.users = mocks.NewMockUserService(s.ctrl)
	s.auth = mocks.NewMockAuthService(s.ctrl)
	s.identity = mocks.NewMockIdentityResolver(s.ctrl)
	s.userID = uuid.New()

	s.identity.EXPECT().Resolve("good-token").Return(s.userID, true).AnyTimes()
	s.identity.EXPECT().Resolve(gomock.Not("good-token")).Return(uuid.Nil, false).AnyTimes()

	s.router = NewHandler(Handlers{
		Votes:  NewVoteHandler(s.votes, nil),
		Topics: NewTopicHandler(s.topics, s.results, s.votes, nil),
		Stats:  NewStatsHandler(s.persona, nil),
		Users:  NewUserHandler(s.users, nil),
		Auth:   NewAuthHandler(s.auth, time.Hour, "", http.SameSiteLaxMode, nil),
	}, RouterConfig{Identity: s.identity})
}

func (s *RouterSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestVote_AnonymousFromBody() {
	s.votes.EXPECT().Vote(gomock.Any(), ports.VoteInput{
		TopicID: 5, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("dev-1"),
	}).Return(&domain.Vote{ID: uuid.New(), TopicID: 5, Choice: domain.ChoiceA, Region: "Seoul", Voter: domain.DeviceVoter("dev-1")}, nil)

	rec := s.do(http.MethodPost, "/api/votes",
		`{"topic_id":5,"choice":"A","region":"Seoul","voter_identity":{"kind":"anonymous","device_id":"dev-1"}}`, nil)

	s.Equal(http.StatusCreated, rec.Code)
	var got map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("A", got["choice"])
	s.Equal(map[string]any{"kind": "anonymous", "device_id": "dev-1"}, got["voter_identity"])
}

func (s *RouterSuite) TestVote_BearerWinsOverDevice() {
	s.votes.EXPECT().Vote(gomock.Any(), ports.VoteInput{
		TopicID: 5, Choice: domain.ChoiceB, Region: "Busan", Voter: domain.UserVoter(s.userID),
	}).Return(&domain.Vote{ID: uuid.New()}, nil)

	rec := s.do(http.MethodPost, "/api/votes", `{"topic_id":5,"choice":"B","region":"Busan"}`,
		map[string]string{"Authorization": "Bearer good-token", deviceIDHeader: "dev-9"})
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *RouterSuite) TestVote_DeviceHeader() {
	s.votes.EXPECT().Vote(gomock.Any(), ports.VoteInput{
		TopicID: 5, Choice: domain.ChoiceB, Region: "Busan", Voter: domain.DeviceVoter("dev-9"),
	}).Return(&domain.Vote{ID: uuid.New()}, nil)

	rec := s.do(http.MethodPost, "/api/votes", `{"topic_id":5,"choice":"B","region":"Busan"}`,
		map[string]string{"Authorization": "Bearer expired", deviceIDHeader: "dev-9"})
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *RouterSuite) TestVote_UserKindNeedsToken() {
	s.votes.EXPECT().Vote(gomock.Any(), gomock.Any()).Times(0)
	rec := s.do(http.MethodPost, "/api/votes",
		`{"topic_id":5,"choice":"A","region":"Seoul","voter_identity":{"kind":"user"}}`, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestVote_ErrorMapping() {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidChoice, http.StatusBadRequest},
		{domain.ErrTopicNotFound, http.StatusNotFound},
		{domain.ErrCooldownActive, http.StatusConflict},
		{domain.ErrTopicClosed, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.votes.EXPECT().Vote(gomock.Any(), gomock.Any()).Return(nil, tt.err)
		rec := s.do(http.MethodPost, "/api/votes", `{"topic_id":5,"choice":"A","region":"Seoul","device_id":"d"}`, nil)
		s.Equal(tt.want, rec.Code, tt.err.Error())
		if tt.want == http.StatusInternalServerError {
			s.NotContains(rec.Body.String(), "disk on fire")
		}
	}

	rec := s.do(http.MethodPost, "/api/votes", `{bad`, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestResults() {
	tally := domain.NewTally([]domain.RegionCount{
		{Region: "Seoul", Choice: domain.ChoiceA, Count: 2},
		{Region: "Busan", Choice: domain.ChoiceB, Count: 1},
	})
	s.topics.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&domain.Topic{ID: 5}, nil)
	s.results.EXPECT().ComputeResults(gomock.Any(), int64(5)).Return(tally, nil)

	rec := s.do(http.MethodGet, "/api/topics/5/results", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"by_region":{"Seoul":{"A":2},"Busan":{"B":1}},"total":{"A":2,"B":1,"total_votes":3}}`, rec.Body.String())

	s.topics.EXPECT().GetByID(gomock.Any(), int64(6)).Return(nil, domain.ErrTopicNotFound)
	rec = s.do(http.MethodGet, "/api/topics/6/results", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/topics/abc/results", "", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestEligibility() {
	last := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	next := last.Add(domain.DefaultCooldown)
	s.votes.EXPECT().CheckStatus(gomock.Any(), int64(5), domain.DeviceVoter("dev-1")).
		Return(&domain.Eligibility{HasVoted: true, LastVotedAt: &last, NextEligibleAt: &next}, nil)

	rec := s.do(http.MethodGet, "/api/topics/5/eligibility?device_id=dev-1", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"has_voted":true,"can_vote_again":false,"last_voted_at":"2025-01-01T00:00:00Z","next_eligible_at":"2025-01-08T00:00:00Z"}`, rec.Body.String())
}

func (s *RouterSuite) TestCurrentTopic() {
	s.topics.EXPECT().GetCurrent(gomock.Any()).Return(&domain.Topic{ID: 3, Title: "Now", Status: domain.TopicStatusOngoing}, nil)
	rec := s.do(http.MethodGet, "/api/topics/current", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"title":"Now"`)
}

func (s *RouterSuite) TestStats() {
	stats := &domain.UserStats{TotalVotes: 6, MatchRate: 100, Title: "Native"}
	s.persona.EXPECT().ComputeUserStats(gomock.Any(), domain.UserVoter(s.userID)).Return(stats, nil)
	rec := s.do(http.MethodGet, "/api/users/me/stats", "", map[string]string{"Authorization": "Bearer good-token"})
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"total_votes":6,"match_rate":100,"title":"Native","description":""}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/users/me/stats", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	s.persona.EXPECT().ComputeUserStats(gomock.Any(), domain.DeviceVoter("dev-2")).Return(stats, nil)
	rec = s.do(http.MethodGet, "/api/voters/stats?device_id=dev-2", "", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/voters/stats", "", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestClaim() {
	s.votes.EXPECT().ClaimDeviceVotes(gomock.Any(), "dev-1", s.userID).Return(int64(3), nil)
	rec := s.do(http.MethodPost, "/api/votes/claim", `{"device_id":"dev-1"}`, map[string]string{"Authorization": "Bearer good-token"})
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"reassigned_votes":3}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/votes/claim", `{"device_id":"dev-1"}`, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestMe() {
	user := &domain.User{ID: s.userID, Nickname: "Park"}
	s.users.EXPECT().GetByID(gomock.Any(), s.userID).Return(user, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "good-token"})
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"nickname":"Park"`)
}

func (s *RouterSuite) TestUpdateNickname() {
	bearer := map[string]string{"Authorization": "Bearer good-token"}

	s.users.EXPECT().UpdateNickname(gomock.Any(), s.userID, "Choi").Return(&domain.User{ID: s.userID, Nickname: "Choi"}, nil)
	rec := s.do(http.MethodPatch, "/api/users/me/nickname", `{"nickname":"Choi"}`, bearer)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"nickname":"Choi"`)

	s.users.EXPECT().UpdateNickname(gomock.Any(), s.userID, "Jung").Return(nil, domain.ErrNicknameCooldown)
	rec = s.do(http.MethodPatch, "/api/users/me/nickname", `{"nickname":"Jung"}`, bearer)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPatch, "/api/users/me/nickname", `{"nickname":"Jung"}`, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestVerifyRegion() {
	bearer := map[string]string{"Authorization": "Bearer good-token"}

	s.users.EXPECT().VerifyRegion(gomock.Any(), s.userID, 35.1631, 129.1635).
		Return(&domain.User{ID: s.userID, VerifiedRegion: "Busan"}, nil)
	rec := s.do(http.MethodPost, "/api/users/me/region", `{"latitude":35.1631,"longitude":129.1635}`, bearer)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"verified_region":"Busan"`)

	rec = s.do(http.MethodPost, "/api/users/me/region", `{"latitude":35.1}`, bearer)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.users.EXPECT().VerifyRegion(gomock.Any(), s.userID, 35.6762, 139.6503).Return(nil, domain.ErrRegionUnknown)
	rec = s.do(http.MethodPost, "/api/users/me/region", `{"latitude":35.6762,"longitude":139.6503}`, bearer)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestOTPFlow() {
	s.auth.EXPECT().RequestCode(gomock.Any(), "010").Return(nil)
	rec := s.do(http.MethodPost, "/auth/otp/request", `{"phone_number":"010"}`, nil)
	s.Equal(http.StatusAccepted, rec.Code)

	s.auth.EXPECT().VerifyCode(gomock.Any(), ports.VerifyCodeInput{PhoneNumber: "010", Code: "123456", DeviceID: "dev-1"}).
		Return(&ports.LoginResult{AccessToken: "tok", User: &domain.User{ID: s.userID}, ReassignedVotes: 1}, nil)
	rec = s.do(http.MethodPost, "/auth/otp/verify", `{"phone_number":"010","code":"123456"}`, map[string]string{deviceIDHeader: "dev-1"})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Set-Cookie"), "access_token=tok")

	s.auth.EXPECT().VerifyCode(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidCode)
	rec = s.do(http.MethodPost, "/auth/otp/verify", `{"phone_number":"010","code":"1"}`, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Bearer  xyz ")
	assert.Equal(t, "xyz", bearerToken(req))
}

func TestRequestVoter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(""))
	assert.True(t, requestVoter(req, "").IsZero())
	assert.Equal(t, domain.DeviceVoter("a"), requestVoter(req, " a "))

	req.Header.Set(deviceIDHeader, "b")
	assert.Equal(t, domain.DeviceVoter("b"), requestVoter(req, ""))
	require.Equal(t, domain.DeviceVoter("a"), requestVoter(req, "a"))
}
