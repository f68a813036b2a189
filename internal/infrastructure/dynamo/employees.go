package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/employee-api/internal/domain"
	"github.com/google/uuid"
)

// Attribute names of the employees table. The table layout is owned entirely
// by this package; callers never see these.
const (
	attrEmployeeID = "employee_id"
	attrFirstName  = "first_name"
	attrLastName   = "last_name"

	firstNameIndex = "first_name-index"
)

// employeeItem is the DynamoDB shape of an employee. Kept separate from the
// domain struct so the table layout can evolve independently of the API.
type employeeItem struct {
	EmployeeID string `dynamodbav:"employee_id"`
	FirstName  string `dynamodbav:"first_name"`
	LastName   string `dynamodbav:"last_name"`
}

func toItem(e *domain.Employee) employeeItem {
	return employeeItem{
		EmployeeID: e.ID.String(),
		FirstName:  e.FirstName,
		LastName:   e.LastName,
	}
}

func fromItem(item employeeItem) (*domain.Employee, error) {
	id, err := uuid.Parse(item.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("parse employee id %q: %w", item.EmployeeID, err)
	}
	return &domain.Employee{ID: id, FirstName: item.FirstName, LastName: item.LastName}, nil
}

// EmployeeRepo provides typed DynamoDB operations for the employees table.
type EmployeeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEmployeeRepo(client *dynamodb.Client, tableName string) *EmployeeRepo {
	return &EmployeeRepo{client: client, tableName: tableName}
}

func (r *EmployeeRepo) Put(ctx context.Context, e *domain.Employee) error {
	item, err := attributevalue.MarshalMap(toItem(e))
	if err != nil {
		return fmt.Errorf("marshal employee: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *EmployeeRepo) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrEmployeeID, employeeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	var item employeeItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return fromItem(item)
}

// GetByFirstName queries the `first_name-index` GSI. Used by the duplicate
// check on create.
func (r *EmployeeRepo) GetByFirstName(ctx context.Context, firstName string) (*domain.Employee, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(firstNameIndex),
		KeyConditionExpression: aws.String("#fn = :fn"),
		ExpressionAttributeNames: map[string]string{
			"#fn": attrFirstName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":fn": &types.AttributeValueMemberS{Value: firstName},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("employee not found: %w", domain.ErrNotFound)
	}
	var item employeeItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, err
	}
	return fromItem(item)
}

func (r *EmployeeRepo) Scan(ctx context.Context) ([]domain.Employee, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var items []employeeItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, 0, len(items))
	for _, item := range items {
		e, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, nil
}

// Update rewrites the mutable fields of an employee. The mapping from domain
// fields to table attributes happens here, not in the caller.
func (r *EmployeeRepo) Update(ctx context.Context, employeeID, firstName, lastName string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		attrFirstName: firstName,
		attrLastName:  lastName,
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrEmployeeID, employeeID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// HardDelete permanently removes an employee item.
func (r *EmployeeRepo) HardDelete(ctx context.Context, employeeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(attrEmployeeID, employeeID),
	})
	return err
}
