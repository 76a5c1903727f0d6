package router

import (
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers served under the API prefix
type Handlers struct {
	Payables       *handler.PayableHandler
	Payouts        *handler.PayoutHandler
	OfficeFinances *handler.OfficeFinanceHandler
	Reports        *handler.ReportHandler
	Contracts      *handler.ContractHandler
	Notifications  *handler.NotificationHandler
}

// FinanceRoutes serves payables, owner payouts and office finances
func FinanceRoutes(h Handlers) *DomainGroup {
	finance := NewDomainGroup("finance", "/finance")

	payables := finance.Group("payables", "/payables")
	payables.GET("", h.Payables.List)
	payables.POST("", h.Payables.Create)
	payables.GET("/stats", h.Payables.Stats)
	payables.GET("/:id", h.Payables.Get)
	payables.PUT("/:id", h.Payables.Update)
	payables.DELETE("/:id", h.Payables.Delete)
	payables.POST("/:id/pay", h.Payables.Pay)
	payables.POST("/:id/cancel", h.Payables.Cancel)
	payables.GET("/:id/receipt", h.Payables.Receipt)
	payables.POST("/:id/attachments", h.Payables.AddAttachment)
	payables.GET("/:id/attachments/:attachment_id", h.Payables.DownloadAttachment)
	payables.DELETE("/:id/attachments/:attachment_id", h.Payables.RemoveAttachment)

	payouts := finance.Group("payouts", "/payouts")
	payouts.GET("", h.Payouts.List)
	payouts.POST("", h.Payouts.Create)
	payouts.GET("/:id", h.Payouts.Get)
	payouts.PUT("/:id", h.Payouts.Update)
	payouts.DELETE("/:id", h.Payouts.Delete)
	payouts.POST("/:id/pay", h.Payouts.Pay)
	payouts.POST("/:id/cancel", h.Payouts.Cancel)

	finances := finance.Group("office-finances", "/office-finances")
	finances.GET("", h.OfficeFinances.List)
	finances.POST("", h.OfficeFinances.Create)
	finances.GET("/:id", h.OfficeFinances.Get)
	finances.PUT("/:id", h.OfficeFinances.Update)
	finances.DELETE("/:id", h.OfficeFinances.Delete)
	finances.POST("/:id/complete", h.OfficeFinances.Complete)
	finances.POST("/:id/cancel", h.OfficeFinances.Cancel)

	return finance
}

// ReportRoutes serves aggregated reports, exports and owner statements
func ReportRoutes(h Handlers) *DomainGroup {
	reports := NewDomainGroup("report", "/reports")
	reports.GET("/summary", h.Reports.Summary)
	reports.GET("/dashboard", h.Reports.Dashboard)
	reports.GET("/export", h.Reports.Export)
	reports.GET("/owners/:owner_id/statement", h.Reports.OwnerStatement)
	return reports
}

// PropertyRoutes serves lease contract actions
func PropertyRoutes(h Handlers) *DomainGroup {
	property := NewDomainGroup("property", "/property")
	property.POST("/contracts/:id/terminate", h.Contracts.Terminate)
	return property
}

// NotificationRoutes serves the notification feed and its live stream
func NotificationRoutes(h Handlers) *DomainGroup {
	notifications := NewDomainGroup("notification", "/notifications")
	notifications.GET("", h.Notifications.List)
	notifications.GET("/unread-count", h.Notifications.UnreadCount)
	notifications.GET("/stream", h.Notifications.Stream)
	notifications.POST("/read-all", h.Notifications.MarkAllRead)
	notifications.POST("/:id/read", h.Notifications.MarkRead)
	notifications.DELETE("/:id", h.Notifications.Delete)
	return notifications
}

// APIRoutes returns every domain group of the API
func APIRoutes(h Handlers) []RouteRegistrar {
	return []RouteRegistrar{
		FinanceRoutes(h),
		ReportRoutes(h),
		PropertyRoutes(h),
		NotificationRoutes(h),
	}
}
