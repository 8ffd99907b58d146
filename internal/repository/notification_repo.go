package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

var ErrNotFound = errors.New("notificacao not found")

const idxCriadaEm = "idx_criada_em"

// NotificationRepository guarda o histórico de notificações para o
// replay de quem conecta depois.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection("notificacoes")}
}

func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "criada_em", Value: -1}},
		Options: options.Index().SetName(idxCriadaEm),
	}
	_, err := r.coll.Indexes().CreateOne(ctx, model)
	if err == nil {
		return nil
	}
	// Se já existir com outra opção, tenta dropar e recriar
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 85 { // IndexOptionsConflict
		if _, dropErr := r.coll.Indexes().DropOne(ctx, idxCriadaEm); dropErr != nil {
			return fmt.Errorf("drop index %s: %w", idxCriadaEm, dropErr)
		}
		_, createErr := r.coll.Indexes().CreateOne(ctx, model)
		return createErr
	}
	return err
}

func (r *NotificationRepository) Insert(ctx context.Context, n models.Notificacao) error {
	if n.CriadaEm.IsZero() {
		n.CriadaEm = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, n)
	if mongo.IsDuplicateKeyError(err) {
		// mesmo id reenviado pelo broker
		return nil
	}
	return err
}

// Recent devolve as últimas notificações, mais nova primeiro.
func (r *NotificationRepository) Recent(ctx context.Context, limit int64) ([]models.Notificacao, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "criada_em", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Notificacao{}
	for cur.Next(ctx) {
		var n models.Notificacao
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, cur.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"lida": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"lida": false}, bson.M{"$set": bson.M{"lida": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
