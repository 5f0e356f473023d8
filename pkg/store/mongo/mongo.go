// Package mongo implements store.Repository on MongoDB.
//
// Masters live in one collection keyed by ID. Versions live in another with
// a unique (master_id, number) index. Version numbers are allocated by
// atomically incrementing the master's current_version.
//
// Content is stored as a BSON document converted from its JSON form, so the
// field variant codec is the single source of truth for the stored shape.
package mongo

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/store"
)

// Default collection names.
const (
	DefaultDatabase           = "bulletins"
	DefaultMastersCollection  = "masters"
	DefaultVersionsCollection = "versions"
)

// Config configures the repository.
type Config struct {
	URI      string
	Database string

	// Timeout bounds connection setup. Defaults to 10s.
	Timeout time.Duration
}

// Repository is a MongoDB-backed store.Repository.
type Repository struct {
	client   *mongo.Client
	masters  *mongo.Collection
	versions *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(ctx context.Context, cfg Config) (*Repository, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}

	db := client.Database(cfg.Database)
	r := &Repository{
		client:   client,
		masters:  db.Collection(DefaultMastersCollection),
		versions: db.Collection(DefaultVersionsCollection),
	}
	if err := r.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	_, err := r.masters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create masters index")
	}
	_, err = r.versions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "master_id", Value: 1}, {Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create versions index")
	}
	return nil
}

// =============================================================================
// Masters
// =============================================================================

func (r *Repository) CreateMaster(ctx context.Context, m document.Master) error {
	if _, err := r.masters.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(errors.ErrCodeConflict, "document %q already exists", m.ID)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "insert document %q", m.ID)
	}
	return nil
}

func (r *Repository) GetMaster(ctx context.Context, id string) (document.Master, error) {
	var m document.Master
	err := r.masters.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return m, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	if err != nil {
		return m, errors.Wrap(errors.ErrCodeStorage, err, "get document %q", id)
	}
	return m, nil
}

func (r *Repository) ListMasters(ctx context.Context, kind document.Kind) ([]document.Master, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.masters.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	out := []document.Master{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode documents")
	}
	return out, nil
}

func (r *Repository) UpdateMaster(ctx context.Context, m document.Master) error {
	res, err := r.masters.UpdateOne(ctx, bson.M{"_id": m.ID}, bson.M{"$set": bson.M{
		"name":        m.Name,
		"description": m.Description,
		"template_id": m.TemplateID,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "update document %q", m.ID)
	}
	if res.MatchedCount == 0 {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", m.ID)
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status document.Status) (document.Master, error) {
	var m document.Master
	err := r.masters.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return m, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
	}
	if err != nil {
		return m, errors.Wrap(errors.ErrCodeStorage, err, "set status of %q", id)
	}
	return m, nil
}

// =============================================================================
// Versions
// =============================================================================

type versionDoc struct {
	ID        string    `bson:"_id"`
	MasterID  string    `bson:"master_id"`
	Number    int       `bson:"number"`
	Comment   string    `bson:"comment,omitempty"`
	Content   bson.Raw  `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(v document.Version) (versionDoc, error) {
	raw, err := contentToBSON(v.Content)
	if err != nil {
		return versionDoc{}, err
	}
	return versionDoc{
		ID:        v.ID,
		MasterID:  v.MasterID,
		Number:    v.Number,
		Comment:   v.Comment,
		Content:   raw,
		CreatedAt: v.CreatedAt,
	}, nil
}

func fromDoc(d versionDoc) (document.Version, error) {
	c, err := contentFromBSON(d.Content)
	if err != nil {
		return document.Version{}, err
	}
	return document.Version{
		ID:        d.ID,
		MasterID:  d.MasterID,
		Number:    d.Number,
		Comment:   d.Comment,
		Content:   c,
		CreatedAt: d.CreatedAt,
	}, nil
}

func contentToBSON(c document.Content) (bson.Raw, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "encode content")
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "convert content to bson")
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "marshal content")
	}
	return raw, nil
}

func contentFromBSON(raw bson.Raw) (document.Content, error) {
	var c document.Content
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return c, errors.Wrap(errors.ErrCodeStorage, err, "convert content from bson")
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(errors.ErrCodeStorage, err, "decode content")
	}
	return c, nil
}

func (r *Repository) AddVersion(ctx context.Context, v document.Version, publish bool) (document.Version, error) {
	return addVersion(ctx, r, v, publish)
}

// versionWriter is the sequence of collection operations behind AddVersion.
type versionWriter interface {
	// allocate advances current_version and returns the master as it was
	// before the update.
	allocate(ctx context.Context, masterID string, publish bool) (document.Master, error)
	// release undoes allocate while current_version is still n.
	release(ctx context.Context, prev document.Master, n int, publish bool) error
	insert(ctx context.Context, d versionDoc) error
}

func addVersion(ctx context.Context, w versionWriter, v document.Version, publish bool) (document.Version, error) {
	prev, err := w.allocate(ctx, v.MasterID, publish)
	if err != nil {
		return v, err
	}
	v.Number = prev.CurrentVersion + 1

	d, err := toDoc(v)
	if err == nil {
		err = w.insert(ctx, d)
	}
	if err == nil {
		return v, nil
	}

	if rerr := w.release(ctx, prev, v.Number, publish); rerr != nil {
		err = errors.Wrap(errors.ErrCodeStorage, err, "release version %d of %q: %v", v.Number, v.MasterID, rerr)
	}
	if mongo.IsDuplicateKeyError(err) {
		return v, errors.New(errors.ErrCodeConflict, "version %d of %q already exists", v.Number, v.MasterID)
	}
	if errors.GetCode(err) != "" {
		return v, err
	}
	return v, errors.Wrap(errors.ErrCodeStorage, err, "insert version")
}

func (r *Repository) allocate(ctx context.Context, masterID string, publish bool) (document.Master, error) {
	filter := bson.M{"_id": masterID}
	set := bson.M{"updated_at": time.Now().UTC()}
	if publish {
		filter["status"] = bson.M{"$ne": document.StatusArchived}
		set["status"] = document.StatusPublished
	}

	var prev document.Master
	err := r.masters.FindOneAndUpdate(ctx, filter,
		bson.M{"$inc": bson.M{"current_version": 1}, "$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if err == mongo.ErrNoDocuments {
		if _, gerr := r.GetMaster(ctx, masterID); gerr != nil {
			return prev, gerr
		}
		return prev, errors.New(errors.ErrCodeConflict, "document %q is archived", masterID)
	}
	if err != nil {
		return prev, errors.Wrap(errors.ErrCodeStorage, err, "allocate version of %q", masterID)
	}
	return prev, nil
}

func (r *Repository) release(ctx context.Context, prev document.Master, n int, publish bool) error {
	update := bson.M{"$inc": bson.M{"current_version": -1}}
	if publish && prev.Status != document.StatusPublished {
		update["$set"] = bson.M{"status": prev.Status}
	}
	_, err := r.masters.UpdateOne(ctx, bson.M{"_id": prev.ID, "current_version": n}, update)
	return err
}

func (r *Repository) insert(ctx context.Context, d versionDoc) error {
	_, err := r.versions.InsertOne(ctx, d)
	return err
}

func (r *Repository) GetVersion(ctx context.Context, masterID string, n int) (document.Version, error) {
	var d versionDoc
	err := r.versions.FindOne(ctx, bson.M{"master_id": masterID, "number": n}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return document.Version{}, errors.New(errors.ErrCodeVersionNotFound, "version %d of document %q not found", n, masterID)
	}
	if err != nil {
		return document.Version{}, errors.Wrap(errors.ErrCodeStorage, err, "get version")
	}
	return fromDoc(d)
}

func (r *Repository) ListVersions(ctx context.Context, masterID string) ([]document.Version, error) {
	if _, err := r.GetMaster(ctx, masterID); err != nil {
		return nil, err
	}
	cur, err := r.versions.Find(ctx, bson.M{"master_id": masterID},
		options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list versions")
	}
	var docs []versionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode versions")
	}
	out := make([]document.Version, 0, len(docs))
	for _, d := range docs {
		v, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Close disconnects the client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

var _ store.Repository = (*Repository)(nil)
