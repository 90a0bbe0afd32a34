package database

import (
	"context"

	appconfig "transporte_xpto/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewAWSConfig loads the shared SDK configuration. Static credentials are
// always set because local DynamoDB and MinIO do not validate them but the
// SDK requires them.
//
// DynamoEndpoint and S3Endpoint, when set, redirect those services to local
// emulators.
func NewAWSConfig(ctx context.Context, cfg appconfig.AWSConfig) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	}

	if cfg.DynamoEndpoint != "" || cfg.S3Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			switch {
			case service == dynamodb.ServiceID && cfg.DynamoEndpoint != "":
				return aws.Endpoint{URL: cfg.DynamoEndpoint, SigningRegion: region, HostnameImmutable: true}, nil
			case service == s3.ServiceID && cfg.S3Endpoint != "":
				return aws.Endpoint{URL: cfg.S3Endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

func NewDynamoDBClient(awsCfg aws.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg)
}

// NewS3Client uses path-style addressing when a custom endpoint is set.
func NewS3Client(awsCfg aws.Config, cfg appconfig.AWSConfig) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3Endpoint != ""
	})
}
