// Package db stores named melody presets.
package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/settings"
)

var (
	ErrNotFound    = errors.New("preset not found")
	ErrInvalidName = errors.New("preset name must not be empty")
)

type Store interface {
	Put(ctx context.Context, name string, s model.Settings) error
	Get(ctx context.Context, name string) (model.Settings, error)
	List(ctx context.Context) ([]string, error)
}

// Dynamo keeps one item per preset: PK is the name, Settings the encoded
// settings.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

// Connect opens a client for region, talking to endpoint when one is given
// (a local DynamoDB for instance).
func Connect(endpoint, region, table string) (*Dynamo, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return NewDynamo(dynamodb.New(sess), table), nil
}

func (d *Dynamo) Put(ctx context.Context, name string, s model.Settings) error {
	if name == "" {
		return ErrInvalidName
	}
	text, err := settings.Encode(s)
	if err != nil {
		return err
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":       {S: aws.String(name)},
			"Settings": {S: aws.String(text)},
		},
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (d *Dynamo) Get(ctx context.Context, name string) (model.Settings, error) {
	res, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		},
	})
	if err != nil {
		return model.Settings{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	v, ok := res.Item["Settings"]
	if !ok || v.S == nil {
		return model.Settings{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return settings.Decode(*v.S)
}

func (d *Dynamo) List(ctx context.Context) ([]string, error) {
	var names []string
	input := &dynamodb.ScanInput{
		TableName:            aws.String(d.table),
		ProjectionExpression: aws.String("PK"),
	}
	err := d.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, last bool) bool {
		for _, item := range page.Items {
			if pk, ok := item["PK"]; ok && pk.S != nil {
				names = append(names, *pk.S)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Memory is a Store for tests and for running without DynamoDB.
type Memory struct {
	mu      sync.RWMutex
	presets map[string]string
}

func NewMemory() *Memory {
	return &Memory{presets: make(map[string]string)}
}

func (m *Memory) Put(_ context.Context, name string, s model.Settings) error {
	if name == "" {
		return ErrInvalidName
	}
	text, err := settings.Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets[name] = text
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (model.Settings, error) {
	m.mu.RLock()
	text, ok := m.presets[name]
	m.mu.RUnlock()
	if !ok {
		return model.Settings{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return settings.Decode(text)
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
