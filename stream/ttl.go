package stream

import (
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// IsDeleted reports whether a stream image carries an expired TTL under attr.
// Items without a TTL, or with a TTL in the future, are active.
func IsDeleted(image map[string]events.DynamoDBAttributeValue, attr string, now time.Time) bool {
	ttl := getNumberAttr(image, attr)
	if ttl == 0 {
		return false
	}
	return ttl <= now.Unix()
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}
