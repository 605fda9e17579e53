package s3client

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type publisher struct {
	api    PutObjectAPI
	bucket string
	prefix string
}

// NewPublisher writes public documents under prefix in bucket.
func NewPublisher(api PutObjectAPI, bucket, prefix string) *publisher {
	return &publisher{api: api, bucket: bucket, prefix: prefix}
}

func (p *publisher) Publish(ctx context.Context, name, contentType string, body []byte) error {
	const op = "client.s3.Publish"

	_, err := p.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(path.Join(p.prefix, name)),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=60"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, name, err)
	}

	return nil
}
