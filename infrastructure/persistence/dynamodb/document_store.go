package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cathedral-bridge/application/ports"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const (
	entityTypeDocument = "DOCUMENT"
	latestSortKey      = "LATEST"

	// DynamoDB rejects items above 400 KB; leave room for the other attributes
	maxDocumentBytes = 390 * 1024
)

// Client is the subset of the DynamoDB API the store uses
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DocumentItem is the stored form of one document
type DocumentItem struct {
	PK         string `dynamodbav:"PK"`         // DOCUMENT#<name>
	SK         string `dynamodbav:"SK"`         // LATEST
	EntityType string `dynamodbav:"EntityType"` // DOCUMENT
	Name       string `dynamodbav:"Name"`
	Document   string `dynamodbav:"Document"`
	Size       int64  `dynamodbav:"Size"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"` // RFC3339 timestamp
}

// DocumentStore persists each document as a single item, so a write is
// either fully visible or not at all.
type DocumentStore struct {
	client    Client
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentStore creates a DynamoDB-backed ports.DocumentStore
func NewDocumentStore(client Client, tableName string, logger *zap.Logger) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
	}
}

func documentKey(name string) string {
	return fmt.Sprintf("DOCUMENT#%s", name)
}

func (s *DocumentStore) location(name string) string {
	return fmt.Sprintf("dynamodb://%s/%s", s.tableName, name)
}

// Sink implements ports.DocumentStore
func (s *DocumentStore) Sink(name string) ports.Sink {
	return &itemSlot{store: s, name: name}
}

// Source implements ports.DocumentStore
func (s *DocumentStore) Source(name string) ports.Source {
	return &itemSlot{store: s, name: name}
}

func (s *DocumentStore) put(ctx context.Context, name string, data []byte) error {
	loc := s.location(name)
	if len(data) > maxDocumentBytes {
		return pkgerrors.NewSinkError(loc, fmt.Errorf("document of %d bytes exceeds the item limit of %d", len(data), maxDocumentBytes))
	}

	item := DocumentItem{
		PK:         documentKey(name),
		SK:         latestSortKey,
		EntityType: entityTypeDocument,
		Name:       name,
		Document:   string(data),
		Size:       int64(len(data)),
		UpdatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewSinkError(loc, fmt.Errorf("failed to marshal item: %w", err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return classify(pkgerrors.NewSinkError(loc, err), err)
	}

	s.logger.Debug("Document stored",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *DocumentStore) get(ctx context.Context, name string) ([]byte, error) {
	loc := s.location(name)
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: documentKey(name)},
			"SK": &types.AttributeValueMemberS{Value: latestSortKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify(pkgerrors.NewSourceError(loc, err), err)
	}
	if len(result.Item) == 0 {
		return nil, pkgerrors.NewNotFoundError("document", name)
	}

	var item DocumentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewSourceError(loc, fmt.Errorf("failed to unmarshal item: %w", err))
	}
	return []byte(item.Document), nil
}

// List implements ports.DocumentStore
func (s *DocumentStore) List(ctx context.Context) ([]ports.DocumentInfo, error) {
	filter := expression.Name("EntityType").Equal(expression.Value(entityTypeDocument))
	projection := expression.NamesList(expression.Name("Name"), expression.Name("Size"), expression.Name("UpdatedAt"))
	expr, err := expression.NewBuilder().WithFilter(filter).WithProjection(projection).Build()
	if err != nil {
		return nil, pkgerrors.NewSourceError(s.tableName, fmt.Errorf("failed to build expression: %w", err))
	}

	out := []ports.DocumentInfo{}
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(s.tableName),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, classify(pkgerrors.NewSourceError(s.tableName, err), err)
		}

		for _, raw := range result.Items {
			var item DocumentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				s.logger.Warn("Skipping malformed document item", zap.Error(err))
				continue
			}
			updated, _ := time.Parse(time.RFC3339, item.UpdatedAt)
			out = append(out, ports.DocumentInfo{
				Name:      item.Name,
				Location:  s.location(item.Name),
				Size:      item.Size,
				UpdatedAt: updated,
			})
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return out, nil
}

// classify annotates a sink or source error with the AWS error code
func classify(domainErr *pkgerrors.DomainError, err error) *pkgerrors.DomainError {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return domainErr
	}
	domainErr.WithDetail("awsErrorCode", ae.ErrorCode())
	switch ae.ErrorCode() {
	case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
		domainErr.WithRetryable(true)
	}
	if ae.ErrorFault() == smithy.FaultServer {
		domainErr.WithRetryable(true)
	}
	return domainErr
}

type itemSlot struct {
	store *DocumentStore
	name  string
}

func (s *itemSlot) Write(ctx context.Context, data []byte) error {
	return s.store.put(ctx, s.name, data)
}

func (s *itemSlot) Read(ctx context.Context) ([]byte, error) {
	return s.store.get(ctx, s.name)
}

func (s *itemSlot) Location() string {
	return s.store.location(s.name)
}
