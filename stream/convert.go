package stream

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConvertImage converts a DynamoDB stream image to an SDK attribute map.
// Use this to decode stream images with attributevalue.
func ConvertImage(image map[string]events.DynamoDBAttributeValue) map[string]types.AttributeValue {
	if image == nil {
		return nil
	}
	result := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		if av := ConvertAttribute(v); av != nil {
			result[k] = av
		}
	}
	return result
}

// ConvertAttribute converts a single stream attribute to its SDK form.
// Returns nil for an unrecognized data type.
func ConvertAttribute(v events.DynamoDBAttributeValue) types.AttributeValue {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}
	case events.DataTypeList:
		list := v.List()
		out := make([]types.AttributeValue, 0, len(list))
		for _, item := range list {
			if av := ConvertAttribute(item); av != nil {
				out = append(out, av)
			}
		}
		return &types.AttributeValueMemberL{Value: out}
	case events.DataTypeMap:
		return &types.AttributeValueMemberM{Value: ConvertImage(v.Map())}
	}
	return nil
}

// TableFromARN extracts the table name from a stream or table ARN,
// e.g. "arn:aws:dynamodb:us-east-1:123456789012:table/tasks/stream/2024-01-01T00:00:00.000".
// Returns empty string if the ARN has no table resource.
func TableFromARN(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 {
		return ""
	}
	resource := strings.Split(parts[5], "/")
	if len(resource) < 2 || resource[0] != "table" {
		return ""
	}
	return resource[1]
}
