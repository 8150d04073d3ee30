package cron

import (
	"log"
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/services"
	"github.com/go-co-op/gocron"
)

func StartCronJobs() {
	s := gocron.NewScheduler(time.Local)

	s.Every(1).Day().Do(mainCleanup)
	s.StartAsync()
}

func mainCleanup() {
	cleanupOrders()
	cleanupQuestions()
}

func cleanupOrders() {
	cancelled, err := services.CancelStalePendingOrders()
	if err != nil {
		log.Printf("Failed to cancel stale pending orders: %v", err)
		return
	}
	log.Printf("Cancelled %v stale pending orders", cancelled)
}

func cleanupQuestions() {
	deleted, err := services.RemoveOldAnsweredQuestions()
	if err != nil {
		log.Printf("Failed to remove old answered questions: %v", err)
		return
	}
	log.Printf("Removed %v old answered questions", deleted)
}
