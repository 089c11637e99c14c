package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"ekanwe/internal/adapter/api"
	"ekanwe/internal/adapter/api/handler"
	apimiddleware "ekanwe/internal/adapter/api/middleware"
	"ekanwe/internal/adapter/api/router"
	"ekanwe/internal/adapter/repository"
	"ekanwe/internal/infrastructure/firebase"
	"ekanwe/internal/infrastructure/push"
	"ekanwe/internal/infrastructure/websocket"
	"ekanwe/internal/usecase"
	"ekanwe/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Try to get service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		// Fallback to file path (for local development)
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	dealRepo := repository.NewFirestoreDealRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	userChatRepo := repository.NewFirestoreUserChatRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	watcher := repository.NewFirestoreWatcher(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	expoClient := push.NewExpoClient(cfg.ExpoPushURL, time.Duration(cfg.PushTimeoutSecs)*time.Second)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, expoClient)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userChatRepo, userRepo)
	ratingUseCase := usecase.NewRatingUseCase(dealRepo)
	dealUseCase := usecase.NewDealUseCase(dealRepo, userRepo, chatUseCase, notificationUseCase, ratingUseCase)
	userUseCase := usecase.NewUserUseCase(userRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, router.Handlers{
		Deal:         handler.NewDealHandler(dealUseCase),
		Chat:         handler.NewChatHandler(chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		User:         handler.NewUserHandler(userUseCase, ratingUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, firebaseAuthClient, watcher),
		Health:       handler.NewHealthHandler(),
	}, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
