package codeforces

import (
	"context"
	"net/url"
	"strconv"
)

type ContestListParams struct {
	Gym *bool
}

func (c *Client) ContestList(ctx context.Context, p ContestListParams) ([]Contest, error) {
	const method = "contest.list"
	q := params{}
	q.setBool("gym", p.Gym)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[Contest](method, result)
}

func (c *Client) ContestRatingChanges(ctx context.Context, contestID int) ([]RatingChange, error) {
	const method = "contest.ratingChanges"
	q := url.Values{"contestId": {strconv.Itoa(contestID)}}
	result, err := c.call(ctx, method, q)
	if err != nil {
		return nil, err
	}
	return decodeResultList[RatingChange](method, result)
}

type StandingsParams struct {
	ContestID      int
	From           *int
	Count          *int
	Handles        []string
	Room           *int
	ShowUnofficial *bool
}

// Standings is the composite result of contest.standings.
type Standings struct {
	Contest  Contest
	Problems []Problem
	Rows     []RanklistRow
}

func (c *Client) ContestStandings(ctx context.Context, p StandingsParams) (Standings, error) {
	const method = "contest.standings"
	q := params{"contestId": {strconv.Itoa(p.ContestID)}}
	q.setInt("from", p.From)
	q.setInt("count", p.Count)
	q.setList("handles", p.Handles)
	q.setInt("room", p.Room)
	q.setBool("showUnofficial", p.ShowUnofficial)

	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return Standings{}, err
	}

	contestRaw, err := resultField(method, result, "contest")
	if err != nil {
		return Standings{}, err
	}
	problemsRaw, err := resultField(method, result, "problems")
	if err != nil {
		return Standings{}, err
	}
	rowsRaw, err := resultField(method, result, "rows")
	if err != nil {
		return Standings{}, err
	}

	contest, err := decodeResult[Contest](method, contestRaw)
	if err != nil {
		return Standings{}, err
	}
	problems, err := decodeResultList[Problem](method, problemsRaw)
	if err != nil {
		return Standings{}, err
	}
	rows, err := decodeResultList[RanklistRow](method, rowsRaw)
	if err != nil {
		return Standings{}, err
	}
	return Standings{Contest: contest, Problems: problems, Rows: rows}, nil
}

type ContestStatusParams struct {
	ContestID int
	Handle    *string
	From      *int
	Count     *int
}

func (c *Client) ContestStatus(ctx context.Context, p ContestStatusParams) ([]Submission, error) {
	const method = "contest.status"
	q := params{"contestId": {strconv.Itoa(p.ContestID)}}
	q.setString("handle", p.Handle)
	q.setInt("from", p.From)
	q.setInt("count", p.Count)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[Submission](method, result)
}

type ProblemsetParams struct {
	Tags           []string
	ProblemsetName *string
}

// Problemset is the composite result of problemset.problems.
type Problemset struct {
	Problems   []Problem
	Statistics []ProblemStatistics
}

func (c *Client) ProblemsetProblems(ctx context.Context, p ProblemsetParams) (Problemset, error) {
	const method = "problemset.problems"
	q := params{}
	q.setList("tags", p.Tags)
	q.setString("problemsetName", p.ProblemsetName)

	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return Problemset{}, err
	}

	problemsRaw, err := resultField(method, result, "problems")
	if err != nil {
		return Problemset{}, err
	}
	statsRaw, err := resultField(method, result, "problemStatistics")
	if err != nil {
		return Problemset{}, err
	}

	problems, err := decodeResultList[Problem](method, problemsRaw)
	if err != nil {
		return Problemset{}, err
	}
	stats, err := decodeResultList[ProblemStatistics](method, statsRaw)
	if err != nil {
		return Problemset{}, err
	}
	return Problemset{Problems: problems, Statistics: stats}, nil
}

type RecentStatusParams struct {
	Count          int
	ProblemsetName *string
}

func (c *Client) ProblemsetRecentStatus(ctx context.Context, p RecentStatusParams) ([]Submission, error) {
	const method = "problemset.recentStatus"
	q := params{"count": {strconv.Itoa(p.Count)}}
	q.setString("problemsetName", p.ProblemsetName)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[Submission](method, result)
}

func (c *Client) UserInfo(ctx context.Context, handles []string) ([]User, error) {
	const method = "user.info"
	q := params{}
	q.setList("handles", handles)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[User](method, result)
}

type RatedListParams struct {
	ActiveOnly *bool
}

func (c *Client) UserRatedList(ctx context.Context, p RatedListParams) ([]User, error) {
	const method = "user.ratedList"
	q := params{}
	q.setBool("activeOnly", p.ActiveOnly)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[User](method, result)
}

func (c *Client) UserRating(ctx context.Context, handle string) ([]RatingChange, error) {
	const method = "user.rating"
	result, err := c.call(ctx, method, url.Values{"handle": {handle}})
	if err != nil {
		return nil, err
	}
	return decodeResultList[RatingChange](method, result)
}

type StatusParams struct {
	From  *int
	Count *int
}

func (c *Client) UserStatus(ctx context.Context, handle string, p StatusParams) ([]Submission, error) {
	const method = "user.status"
	q := params{"handle": {handle}}
	q.setInt("from", p.From)
	q.setInt("count", p.Count)
	result, err := c.call(ctx, method, url.Values(q))
	if err != nil {
		return nil, err
	}
	return decodeResultList[Submission](method, result)
}
