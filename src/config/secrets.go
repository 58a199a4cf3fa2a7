package config

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// FetchSecrets reads a JSON object secret. A nil client uses the default AWS config.
func FetchSecrets(ctx context.Context, client SecretsAPI, secretID string) (map[string]string, error) {
	if client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		client = secretsmanager.NewFromConfig(cfg)
	}
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, err
	}
	if out.SecretString == nil {
		return nil, errors.New("secret has no string value")
	}
	secrets := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &secrets); err != nil {
		return nil, err
	}
	return secrets, nil
}
