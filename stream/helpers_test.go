package stream

import (
	"bytes"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- getNumberAttr Tests ---

func TestGetNumberAttr(t *testing.T) {
	tests := []struct {
		name     string
		image    map[string]events.DynamoDBAttributeValue
		expected int64
	}{
		{"valid number", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("1234567890")}, 1234567890},
		{"negative number", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("-100")}, -100},
		{"missing key", map[string]events.DynamoDBAttributeValue{"other": events.NewNumberAttribute("42")}, 0},
		{"string attribute", map[string]events.DynamoDBAttributeValue{"ttl": events.NewStringAttribute("42")}, 0},
		{"not an integer", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("1.5")}, 0},
		{"nil image", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getNumberAttr(tt.image, "ttl"); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

// --- IsDeleted Tests ---

func TestIsDeleted(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name     string
		image    map[string]events.DynamoDBAttributeValue
		expected bool
	}{
		{"no ttl", map[string]events.DynamoDBAttributeValue{"_id": events.NewStringAttribute("1")}, false},
		{"future ttl", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("1700000100")}, false},
		{"ttl equal to now", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("1700000000")}, true},
		{"past ttl", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("1600000000")}, true},
		{"zero ttl", map[string]events.DynamoDBAttributeValue{"ttl": events.NewNumberAttribute("0")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDeleted(tt.image, "ttl", now); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// --- ConvertAttribute Tests ---

func TestConvertAttribute_Scalars(t *testing.T) {
	if av, ok := ConvertAttribute(events.NewStringAttribute("hello")).(*types.AttributeValueMemberS); !ok || av.Value != "hello" {
		t.Errorf("expected S 'hello', got %#v", av)
	}
	if av, ok := ConvertAttribute(events.NewNumberAttribute("42")).(*types.AttributeValueMemberN); !ok || av.Value != "42" {
		t.Errorf("expected N '42', got %#v", av)
	}
	if av, ok := ConvertAttribute(events.NewBinaryAttribute([]byte("abc"))).(*types.AttributeValueMemberB); !ok || !bytes.Equal(av.Value, []byte("abc")) {
		t.Errorf("expected B 'abc', got %#v", av)
	}
	if av, ok := ConvertAttribute(events.NewBooleanAttribute(true)).(*types.AttributeValueMemberBOOL); !ok || !av.Value {
		t.Errorf("expected BOOL true, got %#v", av)
	}
	if av, ok := ConvertAttribute(events.NewNullAttribute()).(*types.AttributeValueMemberNULL); !ok || !av.Value {
		t.Errorf("expected NULL, got %#v", av)
	}
}

func TestConvertAttribute_Sets(t *testing.T) {
	ss, ok := ConvertAttribute(events.NewStringSetAttribute([]string{"a", "b"})).(*types.AttributeValueMemberSS)
	if !ok || len(ss.Value) != 2 || ss.Value[0] != "a" {
		t.Errorf("expected SS [a b], got %#v", ss)
	}
	ns, ok := ConvertAttribute(events.NewNumberSetAttribute([]string{"1", "2"})).(*types.AttributeValueMemberNS)
	if !ok || len(ns.Value) != 2 || ns.Value[1] != "2" {
		t.Errorf("expected NS [1 2], got %#v", ns)
	}
	bs, ok := ConvertAttribute(events.NewBinarySetAttribute([][]byte{[]byte("x")})).(*types.AttributeValueMemberBS)
	if !ok || len(bs.Value) != 1 {
		t.Errorf("expected BS with 1 value, got %#v", bs)
	}
}

func TestConvertAttribute_Nested(t *testing.T) {
	attr := events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
		"tags": events.NewListAttribute([]events.DynamoDBAttributeValue{
			events.NewStringAttribute("red"),
			events.NewNumberAttribute("7"),
		}),
	})

	m, ok := ConvertAttribute(attr).(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("expected M, got %T", ConvertAttribute(attr))
	}
	list, ok := m.Value["tags"].(*types.AttributeValueMemberL)
	if !ok || len(list.Value) != 2 {
		t.Fatalf("expected L with 2 values, got %#v", m.Value["tags"])
	}
	if s, ok := list.Value[0].(*types.AttributeValueMemberS); !ok || s.Value != "red" {
		t.Errorf("expected S 'red', got %#v", list.Value[0])
	}
	if n, ok := list.Value[1].(*types.AttributeValueMemberN); !ok || n.Value != "7" {
		t.Errorf("expected N '7', got %#v", list.Value[1])
	}
}

func TestConvertImage_Nil(t *testing.T) {
	if ConvertImage(nil) != nil {
		t.Error("expected nil for nil image")
	}
}

// --- TableFromARN Tests ---

func TestTableFromARN(t *testing.T) {
	tests := []struct {
		arn      string
		expected string
	}{
		{"arn:aws:dynamodb:us-east-1:123456789012:table/tasks/stream/2024-01-01T00:00:00.000", "tasks"},
		{"arn:aws:dynamodb:eu-west-1:123456789012:table/users", "users"},
		{"arn:aws:dynamodb:us-east-1:123456789012:global-table/tasks", ""},
		{"arn:aws:dynamodb:us-east-1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TableFromARN(tt.arn); got != tt.expected {
			t.Errorf("TableFromARN(%q) = %q, want %q", tt.arn, got, tt.expected)
		}
	}
}
