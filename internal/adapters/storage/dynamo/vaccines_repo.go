package dynamo

import (
	"context"
	"fmt"
	"time"

	"pet-vaccination-api/internal/domain/vaccines"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type vaccineItem struct {
	ID               string `dynamodbav:"id"`
	PetID            string `dynamodbav:"petId"`
	VaccineName      string `dynamodbav:"vaccineName"`
	VaccineType      string `dynamodbav:"vaccineType"`
	ApplicationDate  string `dynamodbav:"applicationDate"`
	ExpirationDate   string `dynamodbav:"expirationDate"`
	VeterinarianName string `dynamodbav:"veterinarianName"`
	Clinic           string `dynamodbav:"clinic"`
	BatchNumber      string `dynamodbav:"batchNumber,omitempty"`
	Notes            string `dynamodbav:"notes,omitempty"`
	CreatedAt        string `dynamodbav:"createdAt"`
	UpdatedAt        string `dynamodbav:"updatedAt"`
}

type VaccinesRepo struct {
	client *dynamodb.Client
	table  string
}

func NewVaccinesRepo(client *dynamodb.Client, table string) *VaccinesRepo {
	return &VaccinesRepo{client: client, table: table}
}

func (r *VaccinesRepo) Put(ctx context.Context, v vaccines.Vaccine) error {
	item, err := attributevalue.MarshalMap(toVaccineItem(v))
	if err != nil {
		return fmt.Errorf("dynamo: marshal vaccine: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo: put vaccine: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       vaccineKey(id),
	})
	if err != nil {
		return vaccines.Vaccine{}, fmt.Errorf("dynamo: get vaccine: %w", err)
	}
	if out.Item == nil {
		return vaccines.Vaccine{}, vaccines.ErrNotFound
	}

	var item vaccineItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return vaccines.Vaccine{}, fmt.Errorf("dynamo: unmarshal vaccine: %w", err)
	}
	return fromVaccineItem(item), nil
}

func (r *VaccinesRepo) GetAll(ctx context.Context) ([]vaccines.Vaccine, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: scan vaccines: %w", err)
	}
	return unmarshalVaccines(out.Items)
}

func (r *VaccinesRepo) GetByPetID(ctx context.Context, petID string) ([]vaccines.Vaccine, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("petId").Equal(expression.Value(petID))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dynamo: build pet filter: %w", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: scan vaccines by pet: %w", err)
	}
	return unmarshalVaccines(out.Items)
}

func (r *VaccinesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       vaccineKey(id),
	})
	if err != nil {
		return fmt.Errorf("dynamo: delete vaccine: %w", err)
	}
	return nil
}

func vaccineKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalVaccines(items []map[string]types.AttributeValue) ([]vaccines.Vaccine, error) {
	out := make([]vaccines.Vaccine, 0, len(items))
	for _, raw := range items {
		var item vaccineItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("dynamo: unmarshal vaccine: %w", err)
		}
		out = append(out, fromVaccineItem(item))
	}
	return out, nil
}

func toVaccineItem(v vaccines.Vaccine) vaccineItem {
	return vaccineItem{
		ID:               v.ID,
		PetID:            v.PetID,
		VaccineName:      v.VaccineName,
		VaccineType:      string(v.VaccineType),
		ApplicationDate:  v.ApplicationDate,
		ExpirationDate:   v.ExpirationDate,
		VeterinarianName: v.VeterinarianName,
		Clinic:           v.Clinic,
		BatchNumber:      v.BatchNumber,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func fromVaccineItem(item vaccineItem) vaccines.Vaccine {
	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)
	return vaccines.Vaccine{
		ID:               item.ID,
		PetID:            item.PetID,
		VaccineName:      item.VaccineName,
		VaccineType:      vaccines.VaccineType(item.VaccineType),
		ApplicationDate:  item.ApplicationDate,
		ExpirationDate:   item.ExpirationDate,
		VeterinarianName: item.VeterinarianName,
		Clinic:           item.Clinic,
		BatchNumber:      item.BatchNumber,
		Notes:            item.Notes,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
