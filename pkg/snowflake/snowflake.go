package snowflake

import (
	"Storefront/pkg/log"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// Init 多实例部署时每个节点需要不同的 node id
func Init(nodeID int64) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.L.Error("snowflake node init failed, keep default node", zap.Int64("node_id", nodeID), zap.Error(err))
		return
	}
	node = n
}

func GenID() int64 {
	return node.Generate().Int64()
}
