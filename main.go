package main

import (
	"log"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/api"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/api/handlers"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/cron"
)

func main() {

	err := config.InitDB()
	if err != nil {
		log.Fatal("DB not initialized")
	}

	handlers.InitHandlers()
	cron.StartCronJobs()

	api.NewServer()

}
