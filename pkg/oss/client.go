package oss

import (
	"Storefront/config"
	"context"
	"fmt"
	"io"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

func GetOssClient(conf *config.OssConfig) *oss.Client {
	var provider credentials.CredentialsProvider
	if conf.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret)
	} else {
		provider = credentials.NewEnvironmentVariableCredentialsProvider()
	}
	cfg := oss.LoadDefaultConfig().WithCredentialsProvider(provider).
		WithRegion(conf.Region)
	if conf.Endpoint != "" {
		cfg = cfg.WithEndpoint(conf.Endpoint)
	}
	return oss.NewClient(cfg)
}

// Uploader 未配置 bucket 时 Enabled 返回 false, 调用方跳过上传
type Uploader struct {
	client *oss.Client
	bucket string
}

func NewUploader(conf *config.OssConfig) *Uploader {
	if !conf.Enabled() {
		return &Uploader{}
	}
	return &Uploader{client: GetOssClient(conf), bucket: conf.Bucket}
}

func (u *Uploader) Enabled() bool {
	return u != nil && u.client != nil
}

// Upload 返回 oss://bucket/key 形式的地址
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("oss uploader not configured")
	}
	_, err := u.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:      oss.Ptr(u.bucket),
		Key:         oss.Ptr(key),
		ContentType: oss.Ptr(contentType),
		Body:        body,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("oss://%s/%s", u.bucket, key), nil
}
