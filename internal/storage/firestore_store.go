package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"telegram-codeforces-bot/internal/codec"
	"telegram-codeforces-bot/internal/codeforces"
	"telegram-codeforces-bot/internal/vote"
)

const (
	problemsCollectionName = "problems"
	usersCollectionName    = "users"
	scoresCollectionName   = "scores"
	batchCommitSize        = 450
	getAllChunkSize        = 300
	toggleMaxAttempts      = 10
)

var ErrProblemNotFound = errors.New("problem not found")

type Store struct {
	client  *firestore.Client
	logger  *zap.SugaredLogger
	catalog *catalog
	intn    func(int) int
}

func NewStore(client *firestore.Client, catalogTTL time.Duration, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		client:  client,
		logger:  logger,
		catalog: newCatalog(catalogTTL),
		intn:    rand.Intn,
	}
}

// ChatUser identifies who registered a handle.
type ChatUser struct {
	ID       int64
	FullName string
}

func (s *Store) RegisterUser(ctx context.Context, user ChatUser, profile codeforces.User) error {
	_, err := s.userDoc(user.ID).Set(ctx, map[string]any{
		"tg_user": map[string]any{
			"id":       user.ID,
			"fullname": user.FullName,
		},
		"cf_user":    codec.Encode(&profile),
		"updated_at": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

// GetProfile returns the profile snapshot stored for a chat user, if any.
func (s *Store) GetProfile(ctx context.Context, chatUserID int64) (codeforces.User, bool, error) {
	snap, err := s.userDoc(chatUserID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return codeforces.User{}, false, nil
		}
		return codeforces.User{}, false, fmt.Errorf("get profile: %w", err)
	}

	profile, err := codec.Decode[codeforces.User](snap.Data()["cf_user"])
	if err != nil {
		return codeforces.User{}, false, fmt.Errorf("decode profile: %w", err)
	}
	return profile, true, nil
}

func (s *Store) GetProblem(ctx context.Context, mention string) (codeforces.Problem, bool, error) {
	snap, err := s.problemDoc(mention).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return codeforces.Problem{}, false, nil
		}
		return codeforces.Problem{}, false, fmt.Errorf("get problem: %w", err)
	}

	p, err := codec.Decode[codeforces.Problem](snap.Data())
	if err != nil {
		return codeforces.Problem{}, false, fmt.Errorf("decode problem %s: %w", mention, err)
	}
	return p, true, nil
}

// IngestProblems stores every problem whose mention is new and makes sure
// each ingested mention has a score document. With forceReplace the stored
// problems are removed first; votes are kept. It returns how many problems
// were inserted.
func (s *Store) IngestProblems(ctx context.Context, problems []codeforces.Problem, forceReplace bool) (int, error) {
	defer s.catalog.invalidate()

	if forceReplace {
		deleted, err := s.clearCollection(ctx, problemsCollectionName)
		if err != nil {
			return 0, fmt.Errorf("clear problems: %w", err)
		}
		s.logger.Infow("cleared stored problems", "deleted", deleted)
	}

	unique := make([]codeforces.Problem, 0, len(problems))
	mentions := make([]string, 0, len(problems))
	seen := make(map[string]struct{}, len(problems))
	for _, p := range problems {
		mention := p.Mention()
		if mention == "" {
			s.logger.Warnw("skip problem without contest id", "index", p.Index, "name", p.Name)
			continue
		}
		if _, dup := seen[mention]; dup {
			continue
		}
		seen[mention] = struct{}{}
		unique = append(unique, p)
		mentions = append(mentions, mention)
	}

	storedProblems, err := s.existingIDs(ctx, problemsCollectionName, mentions)
	if err != nil {
		return 0, fmt.Errorf("check stored problems: %w", err)
	}
	storedScores, err := s.existingIDs(ctx, scoresCollectionName, mentions)
	if err != nil {
		return 0, fmt.Errorf("check stored scores: %w", err)
	}

	w := s.newBatchWriter()
	inserted, scored := 0, 0
	for _, p := range unique {
		mention := p.Mention()
		if _, ok := storedProblems[mention]; !ok {
			if err := w.create(ctx, s.problemDoc(mention), codec.Encode(&p)); err != nil {
				return 0, fmt.Errorf("insert problems: %w", err)
			}
			inserted++
		}
		if _, ok := storedScores[mention]; !ok {
			if err := w.create(ctx, s.scoreDoc(mention), emptyScores()); err != nil {
				return 0, fmt.Errorf("insert scores: %w", err)
			}
			scored++
		}
	}
	if err := w.flush(ctx); err != nil {
		return 0, fmt.Errorf("insert problems: %w", err)
	}

	s.logger.Infow("ingested problems",
		"received", len(problems),
		"unique", len(unique),
		"inserted", inserted,
		"scores_created", scored,
	)
	return inserted, nil
}

// sampleView is the projection read while sampling.
type sampleView struct {
	Rating *int
	Tags   []string
}

func (v *sampleView) EncodeFields(w *codec.Writer) {
	w.OptInt("rating", v.Rating)
	w.Strings("tags", v.Tags)
}

func (v *sampleView) DecodeFields(r *codec.Reader) {
	r.OptInt("rating", &v.Rating)
	r.Strings("tags", &v.Tags)
}

// SampleProblem picks one stored problem matching f uniformly at random.
// The rating range and the first tag are evaluated by Firestore (this needs
// a composite index on tags+rating); the rest is checked here.
func (s *Store) SampleProblem(ctx context.Context, f ProblemFilter) (codeforces.Problem, bool, error) {
	if f.MinRating > f.MaxRating {
		return codeforces.Problem{}, false, nil
	}

	q := s.client.Collection(problemsCollectionName).
		Where("rating", ">=", f.MinRating).
		Where("rating", "<=", f.MaxRating)
	if len(f.Tags) > 0 {
		q = q.Where("tags", "array-contains", f.Tags[0])
	}

	iter := q.Select("rating", "tags").Documents(ctx)
	defer iter.Stop()

	cands := make([]candidate, 0, 256)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return codeforces.Problem{}, false, fmt.Errorf("query problems: %w", err)
		}

		view, err := codec.Decode[sampleView](doc.Data())
		if err != nil {
			s.logger.Warnw("skip undecodable problem", "mention", doc.Ref.ID, "error", err)
			continue
		}
		cands = append(cands, candidate{mention: doc.Ref.ID, rating: view.Rating, tags: view.Tags})
	}

	mention, ok := pickUniform(cands, f, s.intn)
	if !ok {
		return codeforces.Problem{}, false, nil
	}
	return s.GetProblem(ctx, mention)
}

// QueryProblems looks problems up by mention or by fuzzy match over their
// name and tags, most relevant first.
func (s *Store) QueryProblems(ctx context.Context, text string, maxCount int) ([]codeforces.Problem, error) {
	idx, err := s.catalog.get(ctx, s.allProblems)
	if err != nil {
		return nil, fmt.Errorf("load problem catalog: %w", err)
	}
	return idx.search(text, maxCount), nil
}

// GetScores reports the number of voters per category. Every category is
// present; problems nobody voted on report zeros.
func (s *Store) GetScores(ctx context.Context, mention string) (map[vote.Category]int, error) {
	snap, err := s.scoreDoc(mention).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return vote.Counts(nil), nil
		}
		return nil, fmt.Errorf("get scores: %w", err)
	}

	sets, err := scoreSets(snap.Data())
	if err != nil {
		return nil, fmt.Errorf("decode scores %s: %w", mention, err)
	}
	return vote.Counts(sets), nil
}

// ToggleScore adds chatUserID to the voters of category when absent and
// removes it otherwise. It reports whether the vote is cast afterwards.
func (s *Store) ToggleScore(ctx context.Context, mention string, category vote.Category, chatUserID int64) (bool, error) {
	if !category.Valid() {
		return false, fmt.Errorf("toggle score: %w: %q", vote.ErrUnknownCategory, category)
	}

	problemRef := s.problemDoc(mention)
	scoreRef := s.scoreDoc(mention)

	var cast bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(problemRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrProblemNotFound
			}
			return err
		}

		var (
			w   scoreWrite
			err error
		)
		snap, getErr := tx.Get(scoreRef)
		switch {
		case status.Code(getErr) == codes.NotFound:
			w, err = planToggle(nil, false, category, chatUserID)
		case getErr != nil:
			return getErr
		default:
			w, err = planToggle(snap.Data(), true, category, chatUserID)
		}
		if err != nil {
			return err
		}

		cast = w.cast
		if w.create != nil {
			return tx.Create(scoreRef, w.create)
		}
		return tx.Update(scoreRef, w.update)
	}, firestore.MaxAttempts(toggleMaxAttempts))
	if err != nil {
		return false, fmt.Errorf("toggle score: %w", err)
	}
	return cast, nil
}

func (s *Store) allProblems(ctx context.Context) ([]codeforces.Problem, error) {
	iter := s.client.Collection(problemsCollectionName).Documents(ctx)
	defer iter.Stop()

	out := make([]codeforces.Problem, 0, 1024)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list problems: %w", err)
		}

		p, err := codec.Decode[codeforces.Problem](doc.Data())
		if err != nil {
			s.logger.Warnw("skip undecodable problem", "mention", doc.Ref.ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// existingIDs reports which of ids already name a document in collection.
func (s *Store) existingIDs(ctx context.Context, collection string, ids []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(ids))
	col := s.client.Collection(collection)

	for start := 0; start < len(ids); start += getAllChunkSize {
		end := min(start+getAllChunkSize, len(ids))
		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, id := range ids[start:end] {
			refs = append(refs, col.Doc(id))
		}

		snaps, err := s.client.GetAll(ctx, refs)
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			if snap.Exists() {
				out[snap.Ref.ID] = struct{}{}
			}
		}
	}
	return out, nil
}

func (s *Store) clearCollection(ctx context.Context, collection string) (int, error) {
	iter := s.client.Collection(collection).Select().Documents(ctx)
	defer iter.Stop()

	w := s.newBatchWriter()
	deleted := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("list %s: %w", collection, err)
		}
		if err := w.delete(ctx, doc.Ref); err != nil {
			return deleted, err
		}
		deleted++
	}
	if err := w.flush(ctx); err != nil {
		return deleted, err
	}
	return deleted, nil
}

// batchWriter commits every batchCommitSize writes. Each commit is atomic;
// the sequence as a whole is not.
type batchWriter struct {
	client *firestore.Client
	batch  *firestore.WriteBatch
	ops    int
}

func (s *Store) newBatchWriter() *batchWriter {
	return &batchWriter{client: s.client, batch: s.client.Batch()}
}

func (w *batchWriter) create(ctx context.Context, ref *firestore.DocumentRef, data map[string]any) error {
	w.batch.Create(ref, data)
	return w.added(ctx)
}

func (w *batchWriter) delete(ctx context.Context, ref *firestore.DocumentRef) error {
	w.batch.Delete(ref)
	return w.added(ctx)
}

func (w *batchWriter) added(ctx context.Context) error {
	w.ops++
	if w.ops < batchCommitSize {
		return nil
	}
	return w.flush(ctx)
}

func (w *batchWriter) flush(ctx context.Context) error {
	if w.ops == 0 {
		return nil
	}
	if _, err := w.batch.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	w.batch = w.client.Batch()
	w.ops = 0
	return nil
}

// scoreWrite is the single write that flips one vote. create is set when the
// score document does not exist yet.
type scoreWrite struct {
	create map[string]any
	update []firestore.Update
	cast   bool
}

func planToggle(data map[string]any, exists bool, category vote.Category, chatUserID int64) (scoreWrite, error) {
	field := string(category)
	if !exists {
		doc := emptyScores()
		doc[field] = []any{chatUserID}
		return scoreWrite{create: doc, cast: true}, nil
	}

	voters, err := votersFrom(data[field])
	if err != nil {
		return scoreWrite{}, fmt.Errorf("decode %s voters: %w", field, err)
	}

	cast := voters.Toggle(chatUserID)
	var value any = firestore.ArrayRemove(chatUserID)
	if cast {
		value = firestore.ArrayUnion(chatUserID)
	}
	return scoreWrite{update: []firestore.Update{{Path: field, Value: value}}, cast: cast}, nil
}

func emptyScores() map[string]any {
	data := make(map[string]any, len(vote.Categories))
	for _, c := range vote.Categories {
		data[string(c)] = []any{}
	}
	return data
}

func scoreSets(data map[string]any) (map[vote.Category]vote.Voters, error) {
	sets := make(map[vote.Category]vote.Voters, len(vote.Categories))
	for _, c := range vote.Categories {
		voters, err := votersFrom(data[string(c)])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		sets[c] = voters
	}
	return sets, nil
}

func votersFrom(raw any) (vote.Voters, error) {
	if raw == nil {
		return vote.NewVoters(), nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: voters are %T, not an array", codec.ErrSchemaMismatch, raw)
	}
	voters := make(vote.Voters, len(items))
	for i, item := range items {
		id, ok := item.(int64)
		if !ok {
			return nil, fmt.Errorf("%w: voter [%d] is %T, not an integer", codec.ErrSchemaMismatch, i, item)
		}
		voters.Add(id)
	}
	return voters, nil
}

func (s *Store) problemDoc(mention string) *firestore.DocumentRef {
	return s.client.Collection(problemsCollectionName).Doc(mention)
}

func (s *Store) scoreDoc(mention string) *firestore.DocumentRef {
	return s.client.Collection(scoresCollectionName).Doc(mention)
}

func (s *Store) userDoc(chatUserID int64) *firestore.DocumentRef {
	return s.client.Collection(usersCollectionName).Doc(strconv.FormatInt(chatUserID, 10))
}
