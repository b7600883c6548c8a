package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/results"
	"github.com/dd0wney/cluso-gds/pkg/validation"
)

// ObjectPutter is the part of the S3 client the sink uses
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads every table as one JSON lines object under
// <prefix>/<table>.jsonl (.jsonl.sz when compressed). Rows are buffered in
// memory and uploaded once complete.
type S3Sink struct {
	client ObjectPutter
	bucket string
	prefix string
	opts   Options
}

var _ results.Exporter = (*S3Sink)(nil)

// NewS3Sink builds a client from the default AWS configuration, overridden
// by the region, endpoint and static credentials in opts. A custom
// endpoint switches to path-style addressing.
func NewS3Sink(ctx context.Context, bucket, prefix string, opts Options) (*S3Sink, error) {
	if bucket == "" {
		return nil, errors.New("s3 sink needs a bucket")
	}
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SinkWithClient(client, bucket, prefix, opts), nil
}

// NewS3SinkWithClient uses an existing client
func NewS3SinkWithClient(client ObjectPutter, bucket, prefix string, opts Options) *S3Sink {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, opts: opts}
}

func (s *S3Sink) Name() string { return "s3" }

// Key returns the object key of a table
func (s *S3Sink) Key(table string) string {
	name := table + ".jsonl"
	if s.opts.Compress {
		name += ".sz"
	}
	return path.Join(s.prefix, name)
}

// Export encodes every row before uploading. Without Overwrite the upload
// is conditional and fails if the object exists.
func (s *S3Sink) Export(ctx context.Context, table string, _ []string, rows iter.Seq[results.Row]) (results.ExportStats, error) {
	if err := validation.ValidateToken("table", table); err != nil {
		return results.ExportStats{}, err
	}
	var buf bytes.Buffer
	stats, err := encodeRows(&buf, cancellable(ctx, rows), s.opts.Compress)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return results.ExportStats{}, fmt.Errorf("encode %s: %w", table, err)
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(table)),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String("application/x-ndjson"),
	}
	if s.opts.Compress {
		in.ContentType = aws.String("application/x-snappy-framed")
	}
	if !s.opts.Overwrite {
		in.IfNoneMatch = aws.String("*")
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return results.ExportStats{}, fmt.Errorf("upload s3://%s/%s: %w", s.bucket, *in.Key, err)
	}
	s.opts.Logger.Info("table written",
		logging.String("bucket", s.bucket), logging.String("key", *in.Key), logging.Int("rows", stats.Rows))
	return stats, nil
}
