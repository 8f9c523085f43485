package main

import (
	"context"
	"log"
	"time"

	"pet-vaccination-api/internal/adapters/storage/dynamo"
	"pet-vaccination-api/internal/config"
	"pet-vaccination-api/internal/platform/logger"
	"pet-vaccination-api/internal/router"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
)

var chiLambda *chiadapter.ChiLambdaV2

// init corre una sola vez por cold start: config, logger, cliente de
// DynamoDB y router quedan armados para todas las invocaciones.
func init() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !cfg.UseDynamo() {
		log.Fatal("PETS_TABLE and VACCINES_TABLE must be set in Lambda")
	}

	zl, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.FormatJSON, // CloudWatch quiere JSON siempre
		App:    "pet-vaccination-api",
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.AWSEndpointURL)
	if err != nil {
		log.Fatalf("dynamo client: %v", err)
	}

	r := router.NewRouter(router.Options{
		Logger:       zl,
		PetsRepo:     dynamo.NewPetsRepo(client, cfg.PetsTable),
		VaccinesRepo: dynamo.NewVaccinesRepo(client, cfg.VaccinesTable),
	})

	chiLambda = chiadapter.NewV2(r)
}

func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
