package utils

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
)

func PanicTrace(err interface{}) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%v\n", err)
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fmt.Fprintf(buf, "%s:%d (0x%x)\n", file, line, pc)
	}
	return buf.String()
}

// NormalizeCode 折扣码/推广码统一去空格并转大写
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeEmail 邮箱统一小写
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
