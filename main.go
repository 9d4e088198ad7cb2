package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	levelapi "github.com/beka-birhanu/vinom-maze/api/level"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/config/preset"
	pb "github.com/beka-birhanu/vinom-maze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/infrastruture/levelstore"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	levelRepo       i.LevelRepo
	levelCache      i.LevelCache
	jwtTokenizer    i.Tokenizer
	levelService    i.LevelManager
	levelController api_i.Controller
	presets         preset.Set
	router          *api.Router
	appLogger       *log.Logger
)

func logInfo(format string, args ...interface{}) {
	appLogger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, fmt.Sprintf(format, args...))
}

func fatal(format string, args ...interface{}) {
	appLogger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	logInfo("Connected to MongoDB")
}

func initLevelRepo(client *mongo.Client) {
	levelRepo = repo.NewLevelRepo(client, config.Envs.DBName, "levels")
	logInfo("Level repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed: %v", err)
	}
	logInfo("Connected to Redis")
}

func initLevelCache() {
	var err error
	levelCache, err = levelstore.NewRedisLevelStore(redisClient, &pb.Protobuf{}, &levelstore.Options{
		TTL: config.Envs.LevelTTL,
	})
	if err != nil {
		fatal("Creating level cache: %v", err)
	}
	logInfo("Level cache initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	logInfo("JWT Tokenizer initialized")
}

func initLevelService() {
	var err error
	levelService, err = service.NewLevelService(levelCache, levelRepo, jwtTokenizer, &service.Options{
		TokenTTL:        config.Envs.TokenTTL,
		Logger:          log.New(os.Stdout, config.Prefix("LEVEL-SERVICE", config.ColorCyan), log.LstdFlags),
		GeneratorLogger: log.New(os.Stdout, config.Prefix("GENERATOR", config.ColorMagenta), log.LstdFlags),
	})
	if err != nil {
		fatal("Creating level service: %v", err)
	}
	logInfo("Level service initialized")
}

func initPresets() {
	var err error
	presets, err = preset.Load(config.Envs.PresetsFile)
	if err != nil {
		fatal("Loading presets from %q: %v", config.Envs.PresetsFile, err)
	}
	logInfo("Loaded %d presets", len(presets))
}

func initLevelController() {
	var err error
	levelController, err = levelapi.NewLevelController(levelService, presets)
	if err != nil {
		fatal("Creating level controller: %v", err)
	}
	logInfo("Level controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{levelController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	logInfo("Router initialized")
}

func main() {
	appLogger = log.New(os.Stdout, config.Prefix("APP", config.ColorGreen), log.LstdFlags)
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initLevelRepo(mongoClient)

	initRedis(ctx)
	defer redisClient.Close()
	initLevelCache()

	initJWTTokenizer()
	initLevelService()
	initPresets()
	initLevelController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		fatal("Starting server: %v", err)
	}
}
