// @title Luma API
// @description API for the vocabulary learning app "Luma"
// @BasePath /api/v1
// @schemes http
package main

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"

	"github.com/Selsinee/luma-backend/internal/api"
	"github.com/Selsinee/luma-backend/internal/repository"
	"github.com/Selsinee/luma-backend/internal/service"
	"github.com/Selsinee/luma-backend/pkg/cleanup"
	"github.com/Selsinee/luma-backend/pkg/config"
	jwtservice "github.com/Selsinee/luma-backend/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	runMigrations(&dbCfg)

	usersRepo := repository.NewUsersRepo(&dbCfg)
	decksRepo := repository.NewDecksRepo(&dbCfg)
	wordsRepo := repository.NewWordsRepo(&dbCfg)
	sessionsRepo := repository.NewSessionsRepo(&dbCfg)
	progressRepo := repository.NewProgressRepo(&dbCfg)
	achievementsRepo := repository.NewAchievementsRepo(&dbCfg)

	ttl := time.Duration(cfg.GetInt("JWT_TTL_MINUTES")) * time.Minute
	serv := api.New(&api.ServicesList{
		UserService:  service.NewUserService(usersRepo, achievementsRepo),
		DeckService:  service.NewDeckService(decksRepo, wordsRepo),
		WordService:  service.NewWordService(decksRepo, wordsRepo),
		StudyService: service.NewStudyService(decksRepo, wordsRepo, sessionsRepo, progressRepo, usersRepo, achievementsRepo),
		StatsService: service.NewStatsService(usersRepo, sessionsRepo, progressRepo),
		JwtService:   jwtservice.New(cfg.GetString("JWT_SECRET"), ttl),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}

func runMigrations(dbCfg *repository.PGCfg) {
	conn, err := sql.Open("postgres", dbCfg.ConnString())
	if err != nil {
		log.Fatal("opening migration connection error: ", err)
	}
	defer conn.Close()
	err = goose.Up(conn, "./migrations")
	if err != nil {
		log.Fatal("applying migrations error: ", err)
	}
}
