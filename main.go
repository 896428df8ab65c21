package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"GDCPortal/CronJobs"
	"GDCPortal/FiberConfig"
	"GDCPortal/Models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	setupLogging()

	Models.Connect()

	digest := CronJobs.NewDigestScheduler(Models.DB, 75, false)
	if err := digest.Start(); err != nil {
		log.Printf("Failed to start digest scheduler: %v", err)
	}
	defer digest.Stop()

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
