package main

import (
	"cycleparadise/src/apperror"
	"cycleparadise/src/config"
	"cycleparadise/src/lib/mailer"
	"cycleparadise/src/middlewares"
	"cycleparadise/src/models"
	"cycleparadise/src/repositories"
	"cycleparadise/src/types"
	"cycleparadise/src/utils"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
)

func (s *server) publicBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			pkg, err := s.packages.FindBySlug(c, body.PackageSlug)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			startDate, _ := utils.ParseDate(body.StartDate)
			endDate, _ := utils.ParseDate(body.EndDate)
			booking, err := s.bookings.Create(c, repositories.CreateBookingInput{
				PackageID:       pkg.ID,
				CustomerName:    strings.TrimSpace(body.CustomerFirstName) + " " + strings.TrimSpace(body.CustomerLastName),
				CustomerEmail:   body.CustomerEmail,
				CustomerPhone:   body.CustomerPhone,
				CustomerCountry: utils.StringPtr(body.CustomerCountry),
				Participants:    body.NumberOfGuests,
				StartDate:       startDate,
				EndDate:         endDate,
				SpecialRequests: utils.StringPtr(body.SpecialRequests),
				TotalAmount:     body.TotalPrice,
				PaymentMethod:   types.PAYMENT_METHOD_CASH,
			})
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			booking.Package = pkg
			if err := s.notifier.SendBookingConfirmation(c, booking.CustomerEmail, mailer.DetailsFromBooking(booking)); err != nil {
				log.Printf("Failed to send confirmation email for %s: %s\n", booking.BookingNumber, err.Error())
			}
			summary := fmt.Sprintf("%s booked %s for %d guests starting %s (%s).",
				booking.CustomerName, pkg.Title, booking.Participants,
				booking.StartDate.Format(config.DATE_FORMAT), booking.CustomerEmail)
			if err := s.notifier.SendAdminNotification(c, "New booking "+booking.BookingNumber, summary); err != nil {
				log.Printf("Failed to notify admin of %s: %s\n", booking.BookingNumber, err.Error())
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"success": true,
				"data": gin.H{
					"bookingNumber": booking.BookingNumber,
					"id":            booking.ID,
					"status":        booking.Status,
				},
			})
		})
	return g
}

// searchParams maps the query string onto repository filters. The end
// date is inclusive of the whole day.
func searchParams(q types.BookingQueryFilters) types.BookingSearchParams {
	params := types.BookingSearchParams{
		Query:         strings.TrimSpace(q.Query),
		Status:        types.BookingStatus(q.Status),
		PaymentStatus: types.PaymentStatus(q.PaymentStatus),
		PackageID:     q.PackageID,
		Page:          q.Page,
		Limit:         q.Limit,
	}
	if d, err := utils.ParseDate(q.StartDate); err == nil {
		params.StartDate = &d
	}
	if d, err := utils.ParseDate(q.EndDate); err == nil {
		end := now.With(d).EndOfDay()
		params.EndDate = &end
	}
	return params
}

func (s *server) adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var query types.BookingQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			result, err := s.bookings.FindMany(ctx.Request.Context(), searchParams(query))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		GET("/bookings/upcoming", func(ctx *gin.Context) {
			var query struct {
				Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			bookings, err := s.bookings.FindUpcoming(ctx.Request.Context(), query.Limit)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/packages", func(ctx *gin.Context) {
			options, err := s.bookings.GetPackages(ctx.Request.Context())
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": options})
		}).
		GET("/bookings/export", func(ctx *gin.Context) {
			var query types.BookingQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			bookings, err := s.bookings.FindForExport(ctx.Request.Context(), searchParams(query))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			filename := utils.ExportFilename(s.now().UTC().Format(config.DATE_FORMAT))
			ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
			ctx.Header("Cache-Control", "no-cache")
			ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(utils.BookingsToCSV(bookings)))
		}).
		GET("/bookings/number/:bookingNumber", func(ctx *gin.Context) {
			booking, err := s.bookings.FindByBookingNumber(ctx.Request.Context(), ctx.Param("bookingNumber"))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			booking, err := s.bookings.FindByID(ctx.Request.Context(), params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			current, err := s.bookings.FindByID(c, params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			previous := current.Status
			booking, err := s.bookings.UpdateStatus(c, params.ID, body.Status, body.Notes, middlewares.AdminID(ctx))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			booking.Package = current.Package
			if previous != body.Status {
				s.notifyStatusChange(ctx, booking, body.Notes)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking, "message": "Status updated successfully"})
		}).
		POST("/bookings/:id/payment", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.UpdatePaymentStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			current, err := s.bookings.FindByID(c, params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			previous := current.PaymentStatus
			booking, err := s.bookings.UpdatePaymentStatus(c, params.ID, body.PaymentStatus, body.Notes, middlewares.AdminID(ctx))
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			booking.Package = current.Package
			if body.PaymentStatus == types.PAYMENT_PAID && previous != types.PAYMENT_PAID {
				if err := s.notifier.SendPaymentConfirmed(c, booking.CustomerEmail, mailer.DetailsFromBooking(booking)); err != nil {
					log.Printf("Failed to send payment email for %s: %s\n", booking.BookingNumber, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking, "message": "Payment status updated successfully"})
		}).
		POST("/bookings/:id/email", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.SendBookingEmailRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			c := ctx.Request.Context()
			booking, err := s.bookings.FindByID(c, params.ID)
			if err != nil {
				apperror.Respond(ctx, err)
				return
			}
			details := mailer.DetailsFromBooking(booking)
			switch body.Template {
			case "confirmation":
				err = s.notifier.SendBookingConfirmation(c, booking.CustomerEmail, details)
			case "cancellation":
				err = s.notifier.SendCancellation(c, booking.CustomerEmail, details, body.Message)
			default:
				err = s.notifier.SendCustom(c, booking.CustomerEmail, details, body.Subject, body.Message)
			}
			if err != nil {
				log.Printf("Error sending %s email for %s: %s\n", body.Template, booking.BookingNumber, err.Error())
				if apperror.Status(err) == http.StatusBadRequest {
					apperror.Respond(ctx, err)
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send email"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			if err := s.bookings.Delete(ctx.Request.Context(), params.ID); err != nil {
				apperror.Respond(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
		})
	return g
}

// notifyStatusChange mails the customer after a status transition. Failures
// are logged and never undo the transition.
func (s *server) notifyStatusChange(ctx *gin.Context, booking *models.Booking, notes string) {
	c := ctx.Request.Context()
	details := mailer.DetailsFromBooking(booking)
	var err error
	switch booking.Status {
	case types.BOOKING_CONFIRMED:
		err = s.notifier.SendBookingConfirmation(c, booking.CustomerEmail, details)
	case types.BOOKING_CANCELLED:
		err = s.notifier.SendCancellation(c, booking.CustomerEmail, details, notes)
	default:
		return
	}
	if err != nil {
		log.Printf("Failed to send status email for %s: %s\n", booking.BookingNumber, err.Error())
	}
}
