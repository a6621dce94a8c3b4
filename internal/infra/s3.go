package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
)

// S3 builds the client used for off-site backup mirroring. When no bucket is
// configured the client is nil and the backup service skips the upload step.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	if conf.BackupS3Bucket == "" {
		log.Warn().Msg("infra: s3: backup mirroring disabled, no bucket configured")
		return nil, nil
	}

	awsConf, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.BackupS3Region),
		awsconfig.WithCredentialsProvider(aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		)),
	)
	if err != nil {
		log.Error().Err(err).Msg("infra: s3: failed to load aws config")
		return nil, err
	}

	return s3.NewFromConfig(awsConf), nil
}
