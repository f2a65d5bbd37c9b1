package codeforces

import (
	"fmt"
	"html"
	"strconv"

	"telegram-codeforces-bot/internal/codec"
)

const siteURL = "https://codeforces.com"

// Optional fields are pointers; nil means the API did not send them.

type User struct {
	Handle                  string
	Email                   *string
	VKID                    *string
	OpenID                  *string
	FirstName               *string
	LastName                *string
	Country                 *string
	City                    *string
	Organization            *string
	Contribution            int
	Rank                    *string
	Rating                  *int
	MaxRank                 *string
	MaxRating               *int
	LastOnlineTimeSeconds   int64
	RegistrationTimeSeconds int64
	FriendOfCount           int
	Avatar                  string
	TitlePhoto              string
}

func (u *User) EncodeFields(w *codec.Writer) {
	w.String("handle", u.Handle)
	w.OptString("email", u.Email)
	w.OptString("vkId", u.VKID)
	w.OptString("openId", u.OpenID)
	w.OptString("firstName", u.FirstName)
	w.OptString("lastName", u.LastName)
	w.OptString("country", u.Country)
	w.OptString("city", u.City)
	w.OptString("organization", u.Organization)
	w.Int("contribution", u.Contribution)
	w.OptString("rank", u.Rank)
	w.OptInt("rating", u.Rating)
	w.OptString("maxRank", u.MaxRank)
	w.OptInt("maxRating", u.MaxRating)
	w.Int64("lastOnlineTimeSeconds", u.LastOnlineTimeSeconds)
	w.Int64("registrationTimeSeconds", u.RegistrationTimeSeconds)
	w.Int("friendOfCount", u.FriendOfCount)
	w.String("avatar", u.Avatar)
	w.String("titlePhoto", u.TitlePhoto)
}

func (u *User) DecodeFields(r *codec.Reader) {
	r.String("handle", &u.Handle)
	r.OptString("email", &u.Email)
	r.OptString("vkId", &u.VKID)
	r.OptString("openId", &u.OpenID)
	r.OptString("firstName", &u.FirstName)
	r.OptString("lastName", &u.LastName)
	r.OptString("country", &u.Country)
	r.OptString("city", &u.City)
	r.OptString("organization", &u.Organization)
	r.Int("contribution", &u.Contribution)
	r.OptString("rank", &u.Rank)
	r.OptInt("rating", &u.Rating)
	r.OptString("maxRank", &u.MaxRank)
	r.OptInt("maxRating", &u.MaxRating)
	r.Int64("lastOnlineTimeSeconds", &u.LastOnlineTimeSeconds)
	r.Int64("registrationTimeSeconds", &u.RegistrationTimeSeconds)
	r.Int("friendOfCount", &u.FriendOfCount)
	r.String("avatar", &u.Avatar)
	r.String("titlePhoto", &u.TitlePhoto)
}

// RatingChange.Rank is the rank at the moment of the rating update and is not
// corrected afterwards.
type RatingChange struct {
	ContestID               int
	ContestName             string
	Handle                  string
	Rank                    int
	RatingUpdateTimeSeconds int64
	OldRating               int
	NewRating               int
}

func (c *RatingChange) EncodeFields(w *codec.Writer) {
	w.Int("contestId", c.ContestID)
	w.String("contestName", c.ContestName)
	w.String("handle", c.Handle)
	w.Int("rank", c.Rank)
	w.Int64("ratingUpdateTimeSeconds", c.RatingUpdateTimeSeconds)
	w.Int("oldRating", c.OldRating)
	w.Int("newRating", c.NewRating)
}

func (c *RatingChange) DecodeFields(r *codec.Reader) {
	r.Int("contestId", &c.ContestID)
	r.String("contestName", &c.ContestName)
	r.String("handle", &c.Handle)
	r.Int("rank", &c.Rank)
	r.Int64("ratingUpdateTimeSeconds", &c.RatingUpdateTimeSeconds)
	r.Int("oldRating", &c.OldRating)
	r.Int("newRating", &c.NewRating)
}

type Contest struct {
	ID                  int
	Name                string
	Type                ContestType
	Phase               ContestPhase
	Frozen              bool
	DurationSeconds     int64
	StartTimeSeconds    *int64
	RelativeTimeSeconds *int64
	PreparedBy          *string
	WebsiteURL          *string
	Description         *string
	Difficulty          *int
	Kind                *string
	ICPCRegion          *string
	Country             *string
	City                *string
	Season              *string
}

func (c *Contest) EncodeFields(w *codec.Writer) {
	w.Int("id", c.ID)
	w.String("name", c.Name)
	codec.WriteEnum(w, "type", c.Type)
	codec.WriteEnum(w, "phase", c.Phase)
	w.Bool("frozen", c.Frozen)
	w.Int64("durationSeconds", c.DurationSeconds)
	w.OptInt64("startTimeSeconds", c.StartTimeSeconds)
	w.OptInt64("relativeTimeSeconds", c.RelativeTimeSeconds)
	w.OptString("preparedBy", c.PreparedBy)
	w.OptString("websiteUrl", c.WebsiteURL)
	w.OptString("description", c.Description)
	w.OptInt("difficulty", c.Difficulty)
	w.OptString("kind", c.Kind)
	w.OptString("icpcRegion", c.ICPCRegion)
	w.OptString("country", c.Country)
	w.OptString("city", c.City)
	w.OptString("season", c.Season)
}

func (c *Contest) DecodeFields(r *codec.Reader) {
	r.Int("id", &c.ID)
	r.String("name", &c.Name)
	codec.ReadEnum(r, "type", &c.Type)
	codec.ReadEnum(r, "phase", &c.Phase)
	r.Bool("frozen", &c.Frozen)
	r.Int64("durationSeconds", &c.DurationSeconds)
	r.OptInt64("startTimeSeconds", &c.StartTimeSeconds)
	r.OptInt64("relativeTimeSeconds", &c.RelativeTimeSeconds)
	r.OptString("preparedBy", &c.PreparedBy)
	r.OptString("websiteUrl", &c.WebsiteURL)
	r.OptString("description", &c.Description)
	r.OptInt("difficulty", &c.Difficulty)
	r.OptString("kind", &c.Kind)
	r.OptString("icpcRegion", &c.ICPCRegion)
	r.OptString("country", &c.Country)
	r.OptString("city", &c.City)
	r.OptString("season", &c.Season)
}

type Member struct {
	Handle string
	Name   *string
}

func (m *Member) EncodeFields(w *codec.Writer) {
	w.String("handle", m.Handle)
	w.OptString("name", m.Name)
}

func (m *Member) DecodeFields(r *codec.Reader) {
	r.String("handle", &m.Handle)
	r.OptString("name", &m.Name)
}

// Party is a contestant or a team.
type Party struct {
	ContestID        *int
	Members          []Member
	ParticipantType  ParticipantType
	TeamID           *int
	TeamName         *string
	Ghost            bool
	Room             *int
	StartTimeSeconds *int64
}

func (p *Party) EncodeFields(w *codec.Writer) {
	w.OptInt("contestId", p.ContestID)
	codec.WriteList(w, "members", p.Members)
	codec.WriteEnum(w, "participantType", p.ParticipantType)
	w.OptInt("teamId", p.TeamID)
	w.OptString("teamName", p.TeamName)
	w.Bool("ghost", p.Ghost)
	w.OptInt("room", p.Room)
	w.OptInt64("startTimeSeconds", p.StartTimeSeconds)
}

func (p *Party) DecodeFields(r *codec.Reader) {
	r.OptInt("contestId", &p.ContestID)
	codec.ReadList(r, "members", &p.Members)
	codec.ReadEnum(r, "participantType", &p.ParticipantType)
	r.OptInt("teamId", &p.TeamID)
	r.OptString("teamName", &p.TeamName)
	r.Bool("ghost", &p.Ghost)
	r.OptInt("room", &p.Room)
	r.OptInt64("startTimeSeconds", &p.StartTimeSeconds)
}

type Problem struct {
	ContestID      *int
	ProblemsetName *string
	Index          string
	Name           string
	Type           ProblemType
	Points         *float64
	Rating         *int
	Tags           []string
}

func (p *Problem) EncodeFields(w *codec.Writer) {
	w.OptInt("contestId", p.ContestID)
	w.OptString("problemsetName", p.ProblemsetName)
	w.String("index", p.Index)
	w.String("name", p.Name)
	codec.WriteEnum(w, "type", p.Type)
	w.OptFloat("points", p.Points)
	w.OptInt("rating", p.Rating)
	w.Strings("tags", p.Tags)
}

func (p *Problem) DecodeFields(r *codec.Reader) {
	r.OptInt("contestId", &p.ContestID)
	r.OptString("problemsetName", &p.ProblemsetName)
	r.String("index", &p.Index)
	r.String("name", &p.Name)
	codec.ReadEnum(r, "type", &p.Type)
	r.OptFloat("points", &p.Points)
	r.OptInt("rating", &p.Rating)
	r.Strings("tags", &p.Tags)
}

// Mention is the canonical short id of a problem, e.g. "1497A". It is empty
// when the problem has no contest id.
func (p Problem) Mention() string {
	if p.ContestID == nil {
		return ""
	}
	return strconv.Itoa(*p.ContestID) + p.Index
}

func (p Problem) Link() string {
	contest := ""
	if p.ContestID != nil {
		contest = strconv.Itoa(*p.ContestID)
	}
	return fmt.Sprintf("%s/problemset/problem/%s/%s", siteURL, contest, p.Index)
}

func (p Problem) DisplayName() string {
	if p.Rating == nil {
		return fmt.Sprintf("%s - %s (no rating)", p.Mention(), p.Name)
	}
	return fmt.Sprintf("%s - %s (%d)", p.Mention(), p.Name, *p.Rating)
}

func (p Problem) HTML() string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(p.Link()), html.EscapeString(p.DisplayName()))
}

type ProblemStatistics struct {
	ContestID   *int
	Index       string
	SolvedCount int
}

func (s *ProblemStatistics) EncodeFields(w *codec.Writer) {
	w.OptInt("contestId", s.ContestID)
	w.String("index", s.Index)
	w.Int("solvedCount", s.SolvedCount)
}

func (s *ProblemStatistics) DecodeFields(r *codec.Reader) {
	r.OptInt("contestId", &s.ContestID)
	r.String("index", &s.Index)
	r.Int("solvedCount", &s.SolvedCount)
}

// Submission.Verdict is absent while the submission waits in the queue.
type Submission struct {
	ID                  int64
	ContestID           *int
	CreationTimeSeconds int64
	RelativeTimeSeconds int64
	Problem             Problem
	Author              Party
	ProgrammingLanguage string
	Verdict             *Verdict
	Testset             string
	PassedTestCount     int
	TimeConsumedMillis  int
	MemoryConsumedBytes int64
	Points              *float64
}

func (s *Submission) EncodeFields(w *codec.Writer) {
	w.Int64("id", s.ID)
	w.OptInt("contestId", s.ContestID)
	w.Int64("creationTimeSeconds", s.CreationTimeSeconds)
	w.Int64("relativeTimeSeconds", s.RelativeTimeSeconds)
	w.Record("problem", &s.Problem)
	w.Record("author", &s.Author)
	w.String("programmingLanguage", s.ProgrammingLanguage)
	codec.WriteOptEnum(w, "verdict", s.Verdict)
	w.String("testset", s.Testset)
	w.Int("passedTestCount", s.PassedTestCount)
	w.Int("timeConsumedMillis", s.TimeConsumedMillis)
	w.Int64("memoryConsumedBytes", s.MemoryConsumedBytes)
	w.OptFloat("points", s.Points)
}

func (s *Submission) DecodeFields(r *codec.Reader) {
	r.Int64("id", &s.ID)
	r.OptInt("contestId", &s.ContestID)
	r.Int64("creationTimeSeconds", &s.CreationTimeSeconds)
	r.Int64("relativeTimeSeconds", &s.RelativeTimeSeconds)
	codec.ReadRecord(r, "problem", &s.Problem)
	codec.ReadRecord(r, "author", &s.Author)
	r.String("programmingLanguage", &s.ProgrammingLanguage)
	codec.ReadOptEnum(r, "verdict", &s.Verdict)
	r.String("testset", &s.Testset)
	r.Int("passedTestCount", &s.PassedTestCount)
	r.Int("timeConsumedMillis", &s.TimeConsumedMillis)
	r.Int64("memoryConsumedBytes", &s.MemoryConsumedBytes)
	r.OptFloat("points", &s.Points)
}

// Accepted reports whether the submission was judged OK.
func (s Submission) Accepted() bool {
	return s.Verdict != nil && *s.Verdict == VerdictOK
}

type ProblemResult struct {
	Points                    float64
	Penalty                   *int
	RejectedAttemptCount      int
	Type                      ProblemResultType
	BestSubmissionTimeSeconds *int64
}

func (p *ProblemResult) EncodeFields(w *codec.Writer) {
	w.Float("points", p.Points)
	w.OptInt("penalty", p.Penalty)
	w.Int("rejectedAttemptCount", p.RejectedAttemptCount)
	codec.WriteEnum(w, "type", p.Type)
	w.OptInt64("bestSubmissionTimeSeconds", p.BestSubmissionTimeSeconds)
}

func (p *ProblemResult) DecodeFields(r *codec.Reader) {
	r.Float("points", &p.Points)
	r.OptInt("penalty", &p.Penalty)
	r.Int("rejectedAttemptCount", &p.RejectedAttemptCount)
	codec.ReadEnum(r, "type", &p.Type)
	r.OptInt64("bestSubmissionTimeSeconds", &p.BestSubmissionTimeSeconds)
}

type RanklistRow struct {
	Party                     Party
	Rank                      int
	Points                    float64
	Penalty                   int
	SuccessfulHackCount       int
	UnsuccessfulHackCount     int
	ProblemResults            []ProblemResult
	LastSubmissionTimeSeconds *int64
}

func (row *RanklistRow) EncodeFields(w *codec.Writer) {
	w.Record("party", &row.Party)
	w.Int("rank", row.Rank)
	w.Float("points", row.Points)
	w.Int("penalty", row.Penalty)
	w.Int("successfulHackCount", row.SuccessfulHackCount)
	w.Int("unsuccessfulHackCount", row.UnsuccessfulHackCount)
	codec.WriteList(w, "problemResults", row.ProblemResults)
	w.OptInt64("lastSubmissionTimeSeconds", row.LastSubmissionTimeSeconds)
}

func (row *RanklistRow) DecodeFields(r *codec.Reader) {
	codec.ReadRecord(r, "party", &row.Party)
	r.Int("rank", &row.Rank)
	r.Float("points", &row.Points)
	r.Int("penalty", &row.Penalty)
	r.Int("successfulHackCount", &row.SuccessfulHackCount)
	r.Int("unsuccessfulHackCount", &row.UnsuccessfulHackCount)
	codec.ReadList(r, "problemResults", &row.ProblemResults)
	r.OptInt64("lastSubmissionTimeSeconds", &row.LastSubmissionTimeSeconds)
}

// Ptr returns a pointer to v, for filling optional fields and parameters.
func Ptr[T any](v T) *T {
	return &v
}
