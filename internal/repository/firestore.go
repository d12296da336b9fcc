package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mpmisha/TindeResturant/internal/models"
)

// FirestoreTableRepository implements TableRepository against Cloud
// Firestore. Layout mirrors the Postgres schema: a table document plus
// per-user member and selection documents, so a push writes only the
// caller's own document.
//
//	tables/{code}                     {restaurantId}
//	tables/{code}/users/{userID}      {id, name, color, ordinal}
//	tables/{code}/selections/{userID} {dishIds}
type FirestoreTableRepository struct {
	Client *firestore.Client
}

// NewFirestoreTableRepository wraps an existing Firestore client.
func NewFirestoreTableRepository(client *firestore.Client) *FirestoreTableRepository {
	return &FirestoreTableRepository{Client: client}
}

type fsTable struct {
	RestaurantID string `firestore:"restaurantId"`
}

type fsUser struct {
	ID      string `firestore:"id"`
	Name    string `firestore:"name"`
	Color   string `firestore:"color"`
	Ordinal int    `firestore:"ordinal"`
}

type fsSelections struct {
	DishIDs []string `firestore:"dishIds"`
}

func (r *FirestoreTableRepository) table(code string) *firestore.DocumentRef {
	return r.Client.Collection("tables").Doc(code)
}

// Create writes the table document and the creator's member document.
func (r *FirestoreTableRepository) Create(ctx context.Context, code, restaurantID string, creator models.User) error {
	if _, err := r.table(code).Set(ctx, fsTable{RestaurantID: restaurantID}); err != nil {
		return fmt.Errorf("create table doc: %w", err)
	}
	u := fsUser{ID: creator.ID, Name: creator.Name, Color: creator.Color, Ordinal: 0}
	if _, err := r.table(code).Collection("users").Doc(creator.ID).Set(ctx, u); err != nil {
		return fmt.Errorf("create creator doc: %w", err)
	}
	return nil
}

// Exists probes the table document.
func (r *FirestoreTableRepository) Exists(ctx context.Context, code string) (bool, error) {
	snap, err := r.table(code).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists probe: %w", err)
	}
	return snap.Exists(), nil
}

// Get assembles the snapshot from the table, member, and selection
// documents. Contributor lists follow join ordinal order.
func (r *FirestoreTableRepository) Get(ctx context.Context, code string) (*models.TableData, error) {
	snap, err := r.table(code).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get table doc: %w", err)
	}

	var t fsTable
	if err := snap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("parse table doc: %w", err)
	}

	data := &models.TableData{
		Users:        map[string]models.User{},
		Selections:   map[string][]string{},
		RestaurantID: t.RestaurantID,
	}

	users := r.table(code).Collection("users").OrderBy("ordinal", firestore.Asc).Documents(ctx)
	defer users.Stop()
	var joinOrder []string
	for {
		doc, err := users.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate users: %w", err)
		}
		var u fsUser
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("parse user doc: %w", err)
		}
		data.Users[u.ID] = models.User{ID: u.ID, Name: u.Name, Color: u.Color}
		joinOrder = append(joinOrder, u.ID)
	}

	lists := map[string][]string{}
	sels := r.table(code).Collection("selections").Documents(ctx)
	defer sels.Stop()
	for {
		doc, err := sels.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate selections: %w", err)
		}
		var s fsSelections
		if err := doc.DataTo(&s); err != nil {
			return nil, fmt.Errorf("parse selections doc: %w", err)
		}
		lists[doc.Ref.ID] = s.DishIDs
	}
	for _, userID := range joinOrder {
		for _, dishID := range lists[userID] {
			data.Selections[dishID] = append(data.Selections[dishID], userID)
		}
	}

	return data, nil
}

// AddUser merges one member document. The ordinal is the current member
// count; two simultaneous joins can share a color, which last-write-wins
// store semantics accept.
func (r *FirestoreTableRepository) AddUser(ctx context.Context, code string, u models.User) error {
	docs, err := r.table(code).Collection("users").Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	fu := fsUser{ID: u.ID, Name: u.Name, Color: u.Color, Ordinal: len(docs)}
	if _, err := r.table(code).Collection("users").Doc(u.ID).Set(ctx, fu); err != nil {
		return fmt.Errorf("add user doc: %w", err)
	}
	return nil
}

// SetUserSelections replaces one user's selection document.
func (r *FirestoreTableRepository) SetUserSelections(ctx context.Context, code, userID string, dishIDs []string) error {
	if dishIDs == nil {
		dishIDs = []string{}
	}
	_, err := r.table(code).Collection("selections").Doc(userID).Set(ctx, fsSelections{DishIDs: dishIDs})
	if err != nil {
		return fmt.Errorf("set selections doc: %w", err)
	}
	return nil
}
