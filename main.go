package main

import (
	"log"
	"os"

	"Sparkle/CronJobs"
	"Sparkle/FiberConfig"
	"Sparkle/Generation"
	"Sparkle/Models"
)

func main() {
	setupLogging()
	Models.Connect()

	store := Generation.NewGormStore(Models.DB)
	generator := Generation.NewGenerator(store)
	lifecycle := Generation.NewLifecycle(store)
	orchestrator := Generation.NewOrchestrator(generator, lifecycle)

	scheduler := CronJobs.NewSchedulerService(orchestrator)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start daily scheduler: %v", err)
	}

	FiberConfig.FiberConfig(Models.DB, orchestrator, scheduler)
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
