package main

import "Storefront/service"

// Commands 一次性命令用到的服务, 不启动 http 和消息生产者
type Commands struct {
	Reports *service.ReportService
	Auth    *service.AuthService
	Accrual *service.AccrualService
}
