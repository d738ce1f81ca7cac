package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"sira-backend/internal/auth"
	"sira-backend/internal/config"
	"sira-backend/internal/controller"
	"sira-backend/internal/database"
	"sira-backend/internal/middleware"
	"sira-backend/internal/repository"
	"sira-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}
	if cfg.DefaultSecret {
		logger.Warn("TOKEN_SECRET not set, using built-in development secret")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err.Error())
		os.Exit(1)
	}

	if cfg.Seed {
		if err := repository.NewSeedRepository(db).SeedDatabase(); err != nil {
			logger.Error("failed to seed database", "error", err.Error())
			os.Exit(1)
		}
	}

	// Repositories
	clientRepo := repository.NewClientRepository(db)
	localityRepo := repository.NewLocalityRepository(db)
	parcelRepo := repository.NewParcelRepository(db)
	greenhouseRepo := repository.NewGreenhouseRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	operationsRepo := repository.NewOperationsRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	tokens := auth.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL)
	authService := service.NewAuthService(clientRepo, tokens)
	conditionsService := service.NewConditionsService(statsRepo)

	// Controllers
	authController := controller.NewAuthController(authService, logger)
	clientController := controller.NewClientController(clientRepo, logger)
	localityController := controller.NewLocalityController(localityRepo, logger)
	parcelController := controller.NewParcelController(parcelRepo, logger)
	greenhouseController := controller.NewGreenhouseController(greenhouseRepo, logger)
	catalogController := controller.NewCatalogController(catalogRepo, logger)
	deviceController := controller.NewDeviceController(deviceRepo, logger)
	operationsController := controller.NewOperationsController(operationsRepo, logger)
	conditionsController := controller.NewConditionsController(conditionsService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Bienvenido al sistema SIRA"})
	})
	router.GET("/metrics", middleware.MetricsHandler)

	// Public surface: registration, login, and the locality reference data.
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/token", authController.Token)
	router.POST("/clientes/", clientController.Create)

	localities := router.Group("/localidades")
	{
		localities.GET("/", localityController.List)
		localities.GET("/:codigo_postal", localityController.Get)
		localities.POST("/", localityController.Create)
		localities.PUT("/:codigo_postal", localityController.Update)
		localities.DELETE("/:codigo_postal", localityController.Delete)
	}

	// Everything else requires a bearer token for an active client.
	protected := router.Group("/", middleware.RequireAuth(authService, logger))

	clients := protected.Group("/clientes")
	{
		clients.GET("/", clientController.List)
		clients.GET("/:cliente_id", clientController.Get)
		clients.PUT("/:cliente_id", clientController.Update)
		clients.DELETE("/:cliente_id", clientController.Delete)
	}

	parcels := protected.Group("/parcelas")
	{
		parcels.GET("/", parcelController.List)
		parcels.GET("/:parcela_id", parcelController.Get)
		parcels.GET("/cliente/:cliente_id", parcelController.ListByClient)
		parcels.POST("/", parcelController.Create)
		parcels.PUT("/:parcela_id", parcelController.Update)
		parcels.DELETE("/:parcela_id", parcelController.Delete)
	}

	greenhouses := protected.Group("/invernaderos")
	{
		greenhouses.GET("/", greenhouseController.List)
		greenhouses.GET("/:invernadero_id", greenhouseController.Get)
		greenhouses.GET("/parcela/:parcela_id", greenhouseController.ListByParcel)
		greenhouses.GET("/:invernadero_id/condiciones", conditionsController.GetGreenhouseConditions)
		greenhouses.POST("/", greenhouseController.Create)
		greenhouses.PUT("/:invernadero_id", greenhouseController.Update)
		greenhouses.DELETE("/:invernadero_id", greenhouseController.Delete)
	}

	crops := protected.Group("/cultivos")
	{
		crops.GET("/", catalogController.ListCrops)
		crops.GET("/:cultivo_id", catalogController.GetCrop)
		crops.POST("/", catalogController.CreateCrop)
		crops.PUT("/:cultivo_id", catalogController.UpdateCrop)
		crops.DELETE("/:cultivo_id", catalogController.DeleteCrop)
	}

	params := protected.Group("/parametros")
	{
		params.GET("/", catalogController.ListOptimalParameters)
		params.GET("/:parametro_id", catalogController.GetOptimalParameters)
		params.GET("/cultivo/:cultivo_id", catalogController.ListOptimalParametersByCrop)
		params.POST("/", catalogController.CreateOptimalParameters)
		params.PUT("/:parametro_id", catalogController.UpdateOptimalParameters)
		params.DELETE("/:parametro_id", catalogController.DeleteOptimalParameters)
	}

	sensorTypes := protected.Group("/tipos-sensor")
	{
		sensorTypes.GET("/", catalogController.ListSensorTypes)
		sensorTypes.GET("/:tipo_sensor_id", catalogController.GetSensorType)
		sensorTypes.POST("/", catalogController.CreateSensorType)
		sensorTypes.PUT("/:tipo_sensor_id", catalogController.UpdateSensorType)
		sensorTypes.DELETE("/:tipo_sensor_id", catalogController.DeleteSensorType)
	}

	actuatorTypes := protected.Group("/tipos-actuador")
	{
		actuatorTypes.GET("/", catalogController.ListActuatorTypes)
		actuatorTypes.GET("/:tipo_actuador_id", catalogController.GetActuatorType)
		actuatorTypes.POST("/", catalogController.CreateActuatorType)
		actuatorTypes.PUT("/:tipo_actuador_id", catalogController.UpdateActuatorType)
		actuatorTypes.DELETE("/:tipo_actuador_id", catalogController.DeleteActuatorType)
	}

	sensors := protected.Group("/sensores")
	{
		sensors.GET("/", deviceController.ListSensors)
		sensors.GET("/:sensor_id", deviceController.GetSensor)
		sensors.GET("/invernadero/:invernadero_id", deviceController.ListSensorsByGreenhouse)
		sensors.POST("/", deviceController.CreateSensor)
		sensors.PUT("/:sensor_id", deviceController.UpdateSensor)
		sensors.DELETE("/:sensor_id", deviceController.DeleteSensor)
	}

	actuators := protected.Group("/actuadores")
	{
		actuators.GET("/", deviceController.ListActuators)
		actuators.GET("/:actuador_id", deviceController.GetActuator)
		actuators.GET("/invernadero/:invernadero_id", deviceController.ListActuatorsByGreenhouse)
		actuators.POST("/", deviceController.CreateActuator)
		actuators.PUT("/:actuador_id", deviceController.UpdateActuator)
		actuators.DELETE("/:actuador_id", deviceController.DeleteActuator)
	}

	measurements := protected.Group("/mediciones")
	{
		measurements.GET("/", operationsController.ListMeasurements)
		measurements.GET("/:medicion_id", operationsController.GetMeasurement)
		measurements.GET("/sensor/:sensor_id", operationsController.ListMeasurementsBySensor)
		measurements.POST("/", operationsController.CreateMeasurement)
	}

	actions := protected.Group("/acciones")
	{
		actions.GET("/", operationsController.ListActuatorActions)
		actions.GET("/:accion_id", operationsController.GetActuatorAction)
		actions.GET("/actuador/:actuador_id", operationsController.ListActuatorActionsByActuator)
		actions.POST("/", operationsController.CreateActuatorAction)
	}

	recommendations := protected.Group("/recomendaciones")
	{
		recommendations.GET("/", operationsController.ListRecommendations)
		recommendations.GET("/:recomendacion_id", operationsController.GetRecommendation)
		recommendations.GET("/invernadero/:invernadero_id", operationsController.ListRecommendationsByGreenhouse)
		recommendations.POST("/", operationsController.CreateRecommendation)
		recommendations.PUT("/:recomendacion_id", operationsController.UpdateRecommendation)
		recommendations.DELETE("/:recomendacion_id", operationsController.DeleteRecommendation)
	}

	logger.Info("starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}
