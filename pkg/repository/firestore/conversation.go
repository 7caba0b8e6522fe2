package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/interfaces"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	conversationsCollection = "conversations"
	turnsCollection         = "turns"
)

type conversationRepository struct {
	client *firestore.Client
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository(client *firestore.Client) *conversationRepository {
	return &conversationRepository{client: client}
}

type conversationDoc struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"user_id"`
	Title     string    `firestore:"title"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type turnDoc struct {
	ID            string    `firestore:"id"`
	Role          string    `firestore:"role"`
	Text          string    `firestore:"text"`
	Path          string    `firestore:"path,omitempty"`
	Grounded      bool      `firestore:"grounded"`
	LatencyMillis int64     `firestore:"latency_ms"`
	CreatedAt     time.Time `firestore:"created_at"`
}

func (r *conversationRepository) conversationRef(id types.ConversationID) *firestore.DocumentRef {
	return r.client.Collection(conversationsCollection).Doc(id.String())
}

func (r *conversationRepository) turnsRef(id types.ConversationID) *firestore.CollectionRef {
	return r.conversationRef(id).Collection(turnsCollection)
}

func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	if conv == nil {
		return goerr.New("conversation is nil")
	}

	doc := &conversationDoc{
		ID:        conv.ID.String(),
		UserID:    conv.UserID.String(),
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}

	if _, err := r.conversationRef(conv.ID).Create(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to create conversation",
			goerr.V("conversation_id", conv.ID))
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error) {
	snap, err := r.conversationRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversation_id", id))
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal conversation",
			goerr.V("conversation_id", id))
	}

	return doc.toModel(), nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Conversation, error) {
	query := r.client.Collection(conversationsCollection).
		Where("user_id", "==", userID.String()).
		OrderBy("updated_at", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.Conversation
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate conversations",
				goerr.V("user_id", userID))
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal conversation",
				goerr.V("doc_id", snap.Ref.ID))
		}
		result = append(result, doc.toModel())
	}

	return result, nil
}

func (r *conversationRepository) Delete(ctx context.Context, id types.ConversationID) error {
	if _, err := r.conversationRef(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversation_id", id))
	}

	// Delete turns first so an interrupted delete never orphans the parent
	iter := r.turnsRef(id).Documents(ctx)
	bulkWriter := r.client.BulkWriter(ctx)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			iter.Stop()
			bulkWriter.End()
			return goerr.Wrap(err, "failed to iterate turns for deletion",
				goerr.V("conversation_id", id))
		}
		if _, err := bulkWriter.Delete(snap.Ref); err != nil {
			iter.Stop()
			bulkWriter.End()
			return goerr.Wrap(err, "failed to delete turn",
				goerr.V("conversation_id", id))
		}
	}
	iter.Stop()
	bulkWriter.End()

	if _, err := r.conversationRef(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete conversation",
			goerr.V("conversation_id", id))
	}
	return nil
}

func (r *conversationRepository) AppendTurn(ctx context.Context, id types.ConversationID, turn *model.Turn) error {
	if turn == nil {
		return goerr.New("turn is nil")
	}

	if _, err := r.conversationRef(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversation_id", id))
	}

	doc := &turnDoc{
		ID:            turn.ID.String(),
		Role:          turn.Role.String(),
		Text:          turn.Text,
		Path:          turn.Metadata.Path.String(),
		Grounded:      turn.Metadata.Grounded,
		LatencyMillis: turn.Metadata.LatencyMillis,
		CreatedAt:     turn.CreatedAt,
	}

	if _, err := r.turnsRef(id).Doc(turn.ID.String()).Create(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append turn",
			goerr.V("conversation_id", id),
			goerr.V("turn_id", turn.ID))
	}

	if _, err := r.conversationRef(id).Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: turn.CreatedAt},
	}); err != nil {
		return goerr.Wrap(err, "failed to update conversation timestamp",
			goerr.V("conversation_id", id))
	}
	return nil
}

func (r *conversationRepository) ListTurns(ctx context.Context, id types.ConversationID) ([]*model.Turn, error) {
	iter := r.turnsRef(id).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	turns := []*model.Turn{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate turns",
				goerr.V("conversation_id", id))
		}

		var doc turnDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal turn",
				goerr.V("doc_id", snap.Ref.ID))
		}
		turns = append(turns, doc.toModel(id))
	}

	return turns, nil
}

func (d *conversationDoc) toModel() *model.Conversation {
	return &model.Conversation{
		ID:        types.ConversationID(d.ID),
		UserID:    types.UserID(d.UserID),
		Title:     d.Title,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (d *turnDoc) toModel(conversationID types.ConversationID) *model.Turn {
	return &model.Turn{
		ID:             types.TurnID(d.ID),
		ConversationID: conversationID,
		Role:           types.TurnRole(d.Role),
		Text:           d.Text,
		Metadata: model.TurnMetadata{
			Path:          types.ResponsePath(d.Path),
			Grounded:      d.Grounded,
			LatencyMillis: d.LatencyMillis,
		},
		CreatedAt: d.CreatedAt,
	}
}
