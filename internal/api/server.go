package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Selsinee/luma-backend/internal/service"
)

type Server struct {
	mx           *chi.Mux
	userService  service.UserServiceI
	deckService  service.DeckServiceI
	wordService  service.WordServiceI
	studyService service.StudyServiceI
	statsService service.StatsServiceI
	jwtService   JWTServiceI
}

type ServicesList struct {
	UserService  service.UserServiceI
	DeckService  service.DeckServiceI
	WordService  service.WordServiceI
	StudyService service.StudyServiceI
	StatsService service.StatsServiceI
	JwtService   JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:           chi.NewMux(),
		userService:  servicesOptions.UserService,
		deckService:  servicesOptions.DeckService,
		wordService:  servicesOptions.WordService,
		studyService: servicesOptions.StudyService,
		statsService: servicesOptions.StatsService,
		jwtService:   servicesOptions.JwtService,
	}
}

func (s *Server) Run(address string) error {
	s.routes()
	return http.ListenAndServe(address, s.mx)
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
	})
	s.mx.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", s.GetMe)
			r.Put("/", s.UpdateMe)
			r.Put("/settings", s.UpdateMySettings)
			r.Get("/stats", s.GetMyStats)
			r.Get("/achievements", s.GetMyAchievements)
		})
		r.Route("/decks", func(r chi.Router) {
			r.Post("/", s.CreateDeck)
			r.Get("/", s.GetDecks)
			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", s.GetDeck)
				r.Put("/", s.UpdateDeck)
				r.Delete("/", s.DeleteDeck)
				r.Route("/words", func(r chi.Router) {
					r.Post("/", s.AddWord)
					r.Put("/{wordID}", s.UpdateWord)
					r.Delete("/{wordID}", s.DeleteWord)
				})
			})
		})
		r.Route("/study", func(r chi.Router) {
			r.Post("/sessions", s.LogSession)
			r.Put("/progress/{wordID}", s.UpdateWordProgress)
		})
	})
}
