package routes

import (
	"net/http"

	"pitchbook/auth"
	"pitchbook/booking"
	"pitchbook/clubs"
	"pitchbook/fields"
	"pitchbook/middleware"
	"pitchbook/permissions"
	"pitchbook/players"
	"pitchbook/ratelim"
	"pitchbook/reminders"
	"pitchbook/rental"
	"pitchbook/reports"
	"pitchbook/settings"
	"pitchbook/teams"
	"pitchbook/users"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/fieldpic/*filepath", http.Dir("static/fieldpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/me", middleware.Authenticate(users.Me))
	router.GET("/api/users", middleware.Authenticate(users.ListUsers))
	router.GET("/api/users/:id", middleware.Authenticate(users.GetUser))
	router.POST("/api/pending-users", middleware.Authenticate(users.CreatePendingUser))
	router.PUT("/api/users/:id", middleware.Authenticate(users.UpdateUser))
	router.DELETE("/api/users/:id", middleware.Authenticate(users.DeleteUser))
}

func AddPermissionRoutes(router *httprouter.Router) {
	router.GET("/api/permissions", middleware.Authenticate(permissions.ListVocabulary))
	router.GET("/api/users/:id/permissions", middleware.Authenticate(permissions.GetUserPermissionsHandler))
	router.POST("/api/users/:id/permissions/grant", middleware.Authenticate(permissions.GrantHandler))
	router.POST("/api/users/:id/permissions/revoke", middleware.Authenticate(permissions.RevokeHandler))
	router.POST("/api/users/:id/role", middleware.Authenticate(permissions.SetRoleHandler))
}

func AddClubRoutes(router *httprouter.Router) {
	router.GET("/api/clubs", middleware.Authenticate(clubs.ListClubs))
	router.GET("/api/clubs/:id", middleware.Authenticate(clubs.GetClub))
	router.POST("/api/clubs", middleware.Authenticate(clubs.CreateClub))
	router.PUT("/api/clubs/:id", middleware.Authenticate(clubs.UpdateClub))
	router.DELETE("/api/clubs/:id", middleware.Authenticate(clubs.DeleteClub))
}

func AddTeamRoutes(router *httprouter.Router) {
	router.GET("/api/teams", middleware.Authenticate(teams.ListTeams))
	router.GET("/api/teams/:id", middleware.Authenticate(teams.GetTeam))
	router.POST("/api/teams", middleware.Authenticate(teams.CreateTeam))
	router.PUT("/api/teams/:id", middleware.Authenticate(teams.UpdateTeam))
	router.POST("/api/teams/:id/trainers", middleware.Authenticate(teams.AssignTrainers))
	router.DELETE("/api/teams/:id", middleware.Authenticate(teams.DeleteTeam))
}

func AddPlayerRoutes(router *httprouter.Router) {
	router.GET("/api/players", middleware.Authenticate(players.ListPlayers))
	router.GET("/api/players/:id", middleware.Authenticate(players.GetPlayer))
	router.POST("/api/players", middleware.Authenticate(players.CreatePlayer))
	router.PUT("/api/players/:id", middleware.Authenticate(players.UpdatePlayer))
	router.DELETE("/api/players/:id", middleware.Authenticate(players.DeletePlayer))
}

func AddFieldRoutes(router *httprouter.Router) {
	router.GET("/api/fields", fields.ListFields)
	router.GET("/api/fields/:id", fields.GetField)
	router.POST("/api/fields", middleware.Authenticate(fields.CreateField))
	router.PUT("/api/fields/:id", middleware.Authenticate(fields.UpdateField))
	router.DELETE("/api/fields/:id", middleware.Authenticate(fields.DeleteField))
	router.POST("/api/fields/:id/photo", middleware.Authenticate(fields.UploadFieldPhoto))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", middleware.Authenticate(booking.GetBookingsByDate))
	router.GET("/api/my/bookings", middleware.Authenticate(booking.ListMyBookings))
	router.GET("/api/bookings/:id", middleware.Authenticate(booking.GetBooking))
	router.GET("/api/bookings/:id/qr", middleware.Authenticate(booking.BookingQR))
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(booking.CreateBooking)))
	router.PUT("/api/bookings/:id", middleware.Authenticate(booking.UpdateBooking))
	router.PATCH("/api/bookings/:id/status", middleware.Authenticate(booking.UpdateBookingStatus))
	router.POST("/api/bookings/:id/cancel", middleware.Authenticate(booking.CancelBooking))
	router.DELETE("/api/bookings/:id", middleware.Authenticate(booking.DeleteBooking))
	router.GET("/ws/bookings/:fieldId/:date", booking.HandleWS)
}

func AddRentalRoutes(router *httprouter.Router) {
	router.POST("/api/rental-requests", ratelim.RateLimit(rental.CreateRequest))
	router.GET("/api/rental-requests", middleware.Authenticate(rental.ListRequests))
	router.POST("/api/rental-requests/:id/approve", middleware.Authenticate(rental.ApproveRequest))
	router.POST("/api/rental-requests/:id/reject", middleware.Authenticate(rental.RejectRequest))
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings/general", settings.GetGeneralHandler)
	router.PUT("/api/settings/general", middleware.Authenticate(settings.UpdateGeneralHandler))
}

func AddReportRoutes(router *httprouter.Router) {
	router.GET("/api/reports/bookings", middleware.Authenticate(reports.BookingsSummary))
	router.GET("/api/reports/bookings/pdf", middleware.Authenticate(reports.ExportBookingsPDF))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(reminders.ListNotifications))
	router.POST("/api/notifications/read-all", middleware.Authenticate(reminders.MarkAllRead))
	router.PATCH("/api/notifications/:id", middleware.Authenticate(reminders.MarkRead))
	router.POST("/api/reminders/run", middleware.Authenticate(reminders.RunReminders))
}
