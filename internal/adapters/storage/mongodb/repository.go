// Package mongodb provides the document-store TodoRepository backed by the
// official MongoDB driver. Identifiers are ObjectID hex strings assigned by
// this adapter, and patches translate to $set/$unset update documents so the
// write happens in a single round trip.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain/todo"
	"github.com/vilmarcabanero/nx-starter-sub001/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TodoRepository = (*Repository)(nil)
	_ ports.HealthChecker  = (*Repository)(nil)
)

const collectionName = "todos"

type todoDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Completed bool               `bson:"completed"`
	Priority  string             `bson:"priority"`
	CreatedAt time.Time          `bson:"created_at"`
	DueDate   *time.Time         `bson:"due_date,omitempty"`
}

func (d todoDoc) toDomain() (todo.Todo, error) {
	title, err := todo.NewTitle(d.Title)
	if err != nil {
		return todo.Todo{}, err
	}
	priority, err := todo.ParsePriority(d.Priority)
	if err != nil {
		return todo.Todo{}, err
	}
	var due *time.Time
	if d.DueDate != nil {
		v := d.DueDate.UTC()
		due = &v
	}
	return todo.Rehydrate(d.ID.Hex(), title, d.Completed, d.CreatedAt.UTC(), priority, due), nil
}

// Repository is the MongoDB implementation of ports.TodoRepository.
type Repository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to the MongoDB deployment at uri and verifies it with a
// ping. The client is created once and reused for the process lifetime.
func Open(ctx context.Context, uri, database string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Repository{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
	}, nil
}

// Close disconnects the underlying client.
func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return "mongodb" }

// HealthCheck implements ports.HealthChecker.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Create assigns a fresh ObjectID and inserts the document.
func (r *Repository) Create(ctx context.Context, t todo.Todo) (string, error) {
	oid := primitive.NewObjectID()
	doc := todoDoc{
		ID:        oid,
		Title:     t.Title().String(),
		Completed: t.Completed(),
		Priority:  t.Priority().String(),
		CreatedAt: t.CreatedAt().UTC(),
		DueDate:   t.DueDate(),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("inserting todo: %w", err)
	}
	return oid.Hex(), nil
}

// Update applies the patch in a single FindOneAndUpdate. A malformed or
// unknown identifier reports not-found.
func (r *Repository) Update(ctx context.Context, id string, patch ports.TodoPatch) (todo.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}

	set := bson.M{}
	unset := bson.M{}
	if patch.Title != nil {
		title, err := todo.NewTitle(*patch.Title)
		if err != nil {
			return todo.Todo{}, err
		}
		set["title"] = title.String()
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Priority != nil {
		priority, err := todo.ParsePriority(patch.Priority.String())
		if err != nil {
			return todo.Todo{}, err
		}
		set["priority"] = priority.String()
	}
	switch {
	case patch.ClearDueDate:
		unset["due_date"] = ""
	case patch.DueDate != nil:
		set["due_date"] = patch.DueDate.UTC()
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		// Nothing to change; still report not-found for unknown ids.
		return r.mustGet(ctx, oid, id)
	}

	var doc todoDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}
	if err != nil {
		return todo.Todo{}, fmt.Errorf("updating todo %s: %w", id, err)
	}
	return doc.toDomain()
}

// Delete removes the document, failing with not-found when nothing matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFoundError("no todo with id " + id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("no todo with id " + id)
	}
	return nil
}

// GetByID returns the todo and true when found. A malformed or unknown
// identifier is a miss, (zero, false, nil).
func (r *Repository) GetByID(ctx context.Context, id string) (todo.Todo, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return todo.Todo{}, false, nil
	}

	var doc todoDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return todo.Todo{}, false, nil
	}
	if err != nil {
		return todo.Todo{}, false, fmt.Errorf("fetching todo %s: %w", id, err)
	}

	t, err := doc.toDomain()
	if err != nil {
		return todo.Todo{}, false, err
	}
	return t, true, nil
}

// GetAll returns every todo, newest-created-first.
func (r *Repository) GetAll(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, bson.M{})
}

// GetActive returns not-completed todos, newest-created-first.
func (r *Repository) GetActive(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, bson.M{"completed": false})
}

// GetCompleted returns completed todos, newest-created-first.
func (r *Repository) GetCompleted(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, bson.M{"completed": true})
}

// Count returns the total number of todos.
func (r *Repository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, bson.M{})
}

// CountActive returns the number of not-completed todos.
func (r *Repository) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, bson.M{"completed": false})
}

// CountCompleted returns the number of completed todos.
func (r *Repository) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, bson.M{"completed": true})
}

func (r *Repository) mustGet(ctx context.Context, oid primitive.ObjectID, id string) (todo.Todo, error) {
	var doc todoDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return todo.Todo{}, domain.NewNotFoundError("no todo with id " + id)
	}
	if err != nil {
		return todo.Todo{}, fmt.Errorf("fetching todo %s: %w", id, err)
	}
	return doc.toDomain()
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]todo.Todo, error) {
	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []todoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding todos: %w", err)
	}

	todos := make([]todo.Todo, 0, len(docs))
	for _, doc := range docs {
		t, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *Repository) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return int(n), nil
}
