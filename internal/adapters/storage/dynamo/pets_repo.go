package dynamo

import (
	"context"
	"fmt"
	"time"

	"pet-vaccination-api/internal/domain/pets"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// petItem es el layout plano del registro en la tabla, con los mismos
// nombres de atributo que expone el API (tabla keyeada solo por id).
type petItem struct {
	ID         string  `dynamodbav:"id"`
	Name       string  `dynamodbav:"name"`
	Species    string  `dynamodbav:"species"`
	Breed      string  `dynamodbav:"breed,omitempty"`
	Age        float64 `dynamodbav:"age"`
	Weight     float64 `dynamodbav:"weight"`
	OwnerID    string  `dynamodbav:"ownerId"`
	OwnerName  string  `dynamodbav:"ownerName"`
	OwnerEmail string  `dynamodbav:"ownerEmail"`
	OwnerPhone string  `dynamodbav:"ownerPhone,omitempty"`
	CreatedAt  string  `dynamodbav:"createdAt"`
	UpdatedAt  string  `dynamodbav:"updatedAt"`
}

type PetsRepo struct {
	client *dynamodb.Client
	table  string
}

func NewPetsRepo(client *dynamodb.Client, table string) *PetsRepo {
	return &PetsRepo{client: client, table: table}
}

func (r *PetsRepo) Put(ctx context.Context, p pets.Pet) error {
	item, err := attributevalue.MarshalMap(toPetItem(p))
	if err != nil {
		return fmt.Errorf("dynamo: marshal pet: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo: put pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       petKey(id),
	})
	if err != nil {
		return pets.Pet{}, fmt.Errorf("dynamo: get pet: %w", err)
	}
	if out.Item == nil {
		return pets.Pet{}, pets.ErrNotFound
	}

	var item petItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return pets.Pet{}, fmt.Errorf("dynamo: unmarshal pet: %w", err)
	}
	return fromPetItem(item), nil
}

func (r *PetsRepo) GetAll(ctx context.Context) ([]pets.Pet, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: scan pets: %w", err)
	}
	return unmarshalPets(out.Items)
}

func (r *PetsRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("ownerId").Equal(expression.Value(ownerID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dynamo: build owner filter: %w", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: scan pets by owner: %w", err)
	}
	return unmarshalPets(out.Items)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	// Delete incondicional: borrar un id ausente también es éxito.
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       petKey(id),
	})
	if err != nil {
		return fmt.Errorf("dynamo: delete pet: %w", err)
	}
	return nil
}

func petKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalPets(items []map[string]types.AttributeValue) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0, len(items))
	for _, raw := range items {
		var item petItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("dynamo: unmarshal pet: %w", err)
		}
		out = append(out, fromPetItem(item))
	}
	return out, nil
}

func toPetItem(p pets.Pet) petItem {
	return petItem{
		ID:         p.ID,
		Name:       p.Name,
		Species:    string(p.Species),
		Breed:      p.Breed,
		Age:        p.Age,
		Weight:     p.Weight,
		OwnerID:    p.OwnerID,
		OwnerName:  p.OwnerName,
		OwnerEmail: p.OwnerEmail,
		OwnerPhone: p.OwnerPhone,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fromPetItem(item petItem) pets.Pet {
	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)
	return pets.Pet{
		ID:         item.ID,
		Name:       item.Name,
		Species:    pets.Species(item.Species),
		Breed:      item.Breed,
		Age:        item.Age,
		Weight:     item.Weight,
		OwnerID:    item.OwnerID,
		OwnerName:  item.OwnerName,
		OwnerEmail: item.OwnerEmail,
		OwnerPhone: item.OwnerPhone,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
