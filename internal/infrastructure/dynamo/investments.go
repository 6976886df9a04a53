package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// investmentItem is the stored shape of an investment record. Amounts are
// kept as decimal strings so no precision is lost in the round trip.
type investmentItem struct {
	domain.InvestmentRecord
	InvestedAmount string `dynamodbav:"invested_amount"`
}

func (it investmentItem) record() (domain.InvestmentRecord, error) {
	rec := it.InvestmentRecord
	rec.InvestedAmount = decimal.Zero
	if it.InvestedAmount != "" {
		amt, err := decimal.NewFromString(it.InvestedAmount)
		if err != nil {
			return domain.InvestmentRecord{}, fmt.Errorf("record %s: invested_amount %q: %w", it.RecordID, it.InvestedAmount, err)
		}
		rec.InvestedAmount = amt
	}
	return rec, nil
}

// InvestmentRepo provides typed DynamoDB operations for the investments table.
type InvestmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInvestmentRepo(client *dynamodb.Client, tableName string) *InvestmentRepo {
	return &InvestmentRepo{client: client, tableName: tableName}
}

// List scans the whole table, following pagination.
func (r *InvestmentRepo) List(ctx context.Context) ([]domain.InvestmentRecord, error) {
	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, mapNotFound(err)
		}
		items = append(items, out.Items...)
	}
	return decodeInvestments(items)
}

// ListByInvestor queries the investor_id-created_at GSI in created order.
func (r *InvestmentRepo) ListByInvestor(ctx context.Context, investorID string) ([]domain.InvestmentRecord, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexInvestorCreatedAt),
		KeyConditionExpression: aws.String(fieldInvestorID + " = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: investorID},
		},
	})
	var items []map[string]types.AttributeValue
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, mapNotFound(err)
		}
		items = append(items, out.Items...)
	}
	return decodeInvestments(items)
}

func decodeInvestments(items []map[string]types.AttributeValue) ([]domain.InvestmentRecord, error) {
	var stored []investmentItem
	if err := attributevalue.UnmarshalListOfMaps(items, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal investments: %w", err)
	}
	out := make([]domain.InvestmentRecord, 0, len(stored))
	for _, it := range stored {
		rec, err := it.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
