package orders

import "strconv"

const TopicOrderCreated = "order.created"

// PartitionKey keeps all events of one order on one partition, in order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
