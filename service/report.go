package service

import (
	"Storefront/ledger"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/oss"
	"Storefront/types"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const reportDateLayout = "2006-01-02"

var reportHeader = []string{"affiliate_name", "email", "code", "orders", "revenue", "commission", "points"}

type IReportService interface {
	CommissionReport(ctx context.Context, from, to time.Time) ([]types.ReportRow, error)
	Export(ctx context.Context, from, to time.Time, w io.Writer) (string, error)
}

type ReportService struct {
	Ledger   ledger.Ledger
	Uploader *oss.Uploader
}

var _ IReportService = (*ReportService)(nil)

// ParseReportRange 解析 [from, to) 日期区间, UTC
func ParseReportRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(reportDateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("from", "must be YYYY-MM-DD")
	}
	to, err := time.Parse(reportDateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("to", "must be YYYY-MM-DD")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, invalid("to", "must be after from")
	}
	return from, to, nil
}

// CommissionReport 按推广者汇总区间内的流水, 已取消的不计
func (s *ReportService) CommissionReport(ctx context.Context, from, to time.Time) ([]types.ReportRow, error) {
	txs, err := s.Ledger.ListTransactions(ctx, ledger.TransactionFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	affiliates, err := s.Ledger.ListAffiliates(ctx, ledger.AffiliateFilter{})
	if err != nil {
		return nil, err
	}
	current := make(map[int64]*models.Affiliate, len(affiliates))
	for _, a := range affiliates {
		current[a.ID] = a
	}

	rows := make(map[int64]*types.ReportRow)
	for _, t := range txs {
		if t.Status == models.TransactionCancelled {
			continue
		}
		row, ok := rows[t.AffiliateID]
		if !ok {
			row = &types.ReportRow{
				AffiliateID:   t.AffiliateID,
				AffiliateName: t.AffiliateName,
				Email:         t.AffiliateEmail,
				Code:          t.AffiliateCode,
			}
			// 以推广者当前资料为准, 已删除的沿用流水里的冗余字段
			if a, ok := current[t.AffiliateID]; ok {
				row.AffiliateName, row.Email, row.Code = a.Name, a.Email, a.Code
			}
			rows[t.AffiliateID] = row
		}
		row.Orders += t.OrderCount()
		row.Revenue = row.Revenue.Add(t.OrderTotal)
		row.Commission = row.Commission.Add(t.CommissionAmount)
		row.Points = row.Points.Add(t.PointsEarned)
	}

	result := make([]types.ReportRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Commission.Equal(result[j].Commission) {
			return result[i].Commission.GreaterThan(result[j].Commission)
		}
		return result[i].AffiliateName < result[j].AffiliateName
	})
	return result, nil
}

func money2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func WriteCSV(w io.Writer, rows []types.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.AffiliateName,
			r.Email,
			r.Code,
			strconv.FormatInt(r.Orders, 10),
			money2(r.Revenue),
			money2(r.Commission),
			money2(r.Points),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReportKey(from, to time.Time) string {
	return fmt.Sprintf("reports/commission_%s_%s.csv", from.Format(reportDateLayout), to.Format(reportDateLayout))
}

// Export 生成 CSV 写入 w, 配置了 OSS 时同时上传, 返回上传地址
func (s *ReportService) Export(ctx context.Context, from, to time.Time, w io.Writer) (string, error) {
	rows, err := s.CommissionReport(ctx, from, to)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return "", err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return "", err
	}
	if !s.Uploader.Enabled() {
		return "", nil
	}
	location, err := s.Uploader.Upload(ctx, ReportKey(from, to), "text/csv", bytes.NewReader(buf.Bytes()))
	if err != nil {
		log.L.Warn("upload commission report failed", zap.Error(err))
		return "", nil
	}
	log.L.Info("commission report uploaded", zap.String("location", location), zap.Int("rows", len(rows)))
	return location, nil
}
