package utils

import (
	"fmt"
	"strings"

	"github.com/speps/go-hashids/v2"
)

// GenOrderNumber 把 snowflake id 编码成对外展示的订单号
func GenOrderNumber(salt string, id int64) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 10
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return fmt.Sprintf("ORD-%d", id)
	}
	e, err := h.EncodeInt64([]int64{id})
	if err != nil {
		return fmt.Sprintf("ORD-%d", id)
	}
	return "ORD-" + strings.ToUpper(e)
}

// GenAdjustmentNumber 手动调整积分的流水号
func GenAdjustmentNumber(id int64) string {
	return fmt.Sprintf("ADJ-%d", id)
}
