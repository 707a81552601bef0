package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/client/apiclient"
	"github.com/dmitrijs2005/fleetdesk/internal/client/models"
	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
)

const genericFailure = "Something went wrong, please try again"

func userMessage(err error, fallback string) string {
	if errors.Is(err, common.ErrorValidation) {
		if _, isAPI := apiclient.AsAPIError(err); !isAPI {
			return err.Error()
		}
	}
	return apiclient.UserMessage(err, fallback)
}

// screen opens route through the guard.
func (a *App) screen(ctx context.Context, route string) error {
	if !a.router.Goto(ctx, route) {
		return errNotRendered
	}
	return nil
}

func (a *App) table(header string, rows func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

func (a *App) Dashboard(ctx context.Context) error {
	if err := a.screen(ctx, "/admin/dashboard"); err != nil {
		return err
	}
	st, err := a.api.Dashboard.Stats(ctx)
	if err != nil {
		a.fail(ctx, err, genericFailure)
		return err
	}
	a.table("METRIC\tVALUE", func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "users\t%d\n", st.TotalUsers)
		fmt.Fprintf(w, "active drivers\t%d\n", st.ActiveDrivers)
		fmt.Fprintf(w, "pending drivers\t%d\n", st.PendingDrivers)
		fmt.Fprintf(w, "orders today\t%d\n", st.OrdersToday)
		fmt.Fprintf(w, "revenue today\t%.2f\n", st.RevenueToday)
		fmt.Fprintf(w, "open tickets\t%d\n", st.OpenTickets)
	})
	return nil
}

// Users lists accounts, or changes one:
//
//	users [ROLE]
//	users role <id> <ROLE>
//	users status <id> <ACTIVE|SUSPENDED|BANNED>
func (a *App) Users(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/admin/users"); err != nil {
		return err
	}

	if len(args) == 3 && (args[0] == "role" || args[0] == "status") {
		var (
			u   dto.User
			err error
		)
		if args[0] == "role" {
			u, err = a.api.Users.UpdateRole(ctx, args[1], dto.UpdateRoleRequest{Role: strings.ToUpper(args[2])})
		} else {
			u, err = a.api.Users.SetStatus(ctx, args[1], dto.SetStatusRequest{Status: strings.ToUpper(args[2])})
		}
		if err != nil {
			a.fail(ctx, err, "Could not update the user")
			return err
		}
		fmt.Fprintf(a.out, "Updated %s: role %s, status %s\n", u.ID, u.Role, u.Status)
		return nil
	}

	q := dto.UserListQuery{ListQuery: dto.ListQuery{Limit: 50}}
	if len(args) > 0 {
		r, ok := models.ParseRole(args[0])
		if !ok {
			fmt.Fprintln(a.out, "Unknown role:", args[0])
			return common.ErrorValidation
		}
		q.Role = string(r)
	}
	page, err := a.api.Users.List(ctx, q)
	if err != nil {
		a.fail(ctx, err, "Could not load users")
		return err
	}
	a.table("ID\tNAME\tEMAIL\tROLE\tSTATUS", func(w *tabwriter.Writer) {
		for _, u := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
		}
	})
	fmt.Fprintf(a.out, "%d of %d\n", len(page.Items), page.Total)
	return nil
}

// Drivers lists drivers, or acts on one:
//
//	drivers [STATUS]
//	drivers approve <id>
//	drivers suspend <id> <reason...>
func (a *App) Drivers(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/dispatch/drivers"); err != nil {
		return err
	}

	if len(args) >= 2 && (args[0] == "approve" || args[0] == "suspend") {
		var (
			d   dto.Driver
			err error
		)
		if args[0] == "approve" {
			d, err = a.api.Drivers.Approve(ctx, args[1])
		} else {
			d, err = a.api.Drivers.Suspend(ctx, args[1], dto.SuspendDriverRequest{Reason: strings.Join(args[2:], " ")})
		}
		if err != nil {
			a.fail(ctx, err, "Could not update the driver")
			return err
		}
		fmt.Fprintf(a.out, "Driver %s is now %s\n", d.ID, d.Status)
		return nil
	}

	q := dto.DriverListQuery{}
	if len(args) > 0 {
		q.Status = strings.ToUpper(args[0])
	}
	page, err := a.api.Drivers.List(ctx, q)
	if err != nil {
		a.fail(ctx, err, "Could not load drivers")
		return err
	}
	a.table("ID\tNAME\tSTATUS\tONLINE\tRATING\tVEHICLE", func(w *tabwriter.Writer) {
		for _, d := range page.Items {
			plate := "-"
			if d.Vehicle != nil {
				plate = d.Vehicle.PlateNumber
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%.1f\t%s\n", d.ID, d.Name, d.Status, d.Online, d.Rating, plate)
		}
	})
	return nil
}

func (a *App) Orders(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/dispatch/orders"); err != nil {
		return err
	}
	q := dto.OrderListQuery{ListQuery: dto.ListQuery{Limit: 50}}
	if len(args) > 0 {
		q.Status = strings.ToUpper(args[0])
	}
	page, err := a.api.Orders.List(ctx, q)
	if err != nil {
		a.fail(ctx, err, "Could not load orders")
		return err
	}
	a.table("ID\tSTATUS\tDRIVER\tFARE\tFROM\tTO", func(w *tabwriter.Writer) {
		for _, o := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n", o.ID, o.Status, dash(o.DriverID), o.Fare, o.Pickup.Address, o.Dropoff.Address)
		}
	})
	return nil
}

// Order shows one order, or changes it:
//
//	order <id>
//	order <id> status <STATUS>
//	order <id> assign <driver-id>
func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: order <id> [status <STATUS>|assign <driver-id>]")
		return common.ErrorValidation
	}
	id := args[0]
	if err := a.screen(ctx, "/dispatch/orders/"+id); err != nil {
		return err
	}

	var (
		o   dto.Order
		err error
	)
	switch {
	case len(args) == 3 && args[1] == "status":
		o, err = a.api.Orders.UpdateStatus(ctx, id, dto.UpdateOrderStatusRequest{Status: strings.ToUpper(args[2])})
	case len(args) == 3 && args[1] == "assign":
		o, err = a.api.Orders.Assign(ctx, id, dto.AssignDriverRequest{DriverID: args[2]})
	default:
		o, err = a.api.Orders.Get(ctx, id)
	}
	if err != nil {
		a.fail(ctx, err, "Could not load the order")
		return err
	}

	fmt.Fprintf(a.out, "order %s [%s]\n", o.ID, o.Status)
	fmt.Fprintf(a.out, "  customer: %s\n  driver:   %s\n", o.CustomerID, dash(o.DriverID))
	fmt.Fprintf(a.out, "  pickup:   %s\n  dropoff:  %s\n", o.Pickup.Address, o.Dropoff.Address)
	fmt.Fprintf(a.out, "  distance: %.1f km  fare: %.2f\n", o.DistanceKm, o.Fare)
	return nil
}

// Pricing shows the tariff, or changes one field:
//
//	pricing set <baseFare|perKm|perMinute|surge|minimumFare> <value>
func (a *App) Pricing(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/admin/pricing"); err != nil {
		return err
	}
	p, err := a.api.Pricing.Get(ctx)
	if err != nil {
		a.fail(ctx, err, "Could not load pricing")
		return err
	}

	if len(args) == 3 && args[0] == "set" {
		v, perr := strconv.ParseFloat(args[2], 64)
		if perr != nil {
			fmt.Fprintln(a.out, "Error: value must be a number")
			return common.ErrorValidation
		}
		switch strings.ToLower(args[1]) {
		case "basefare":
			p.BaseFare = v
		case "perkm":
			p.PerKm = v
		case "perminute":
			p.PerMinute = v
		case "surge", "surgemultiplier":
			p.SurgeMultiplier = v
		case "minimumfare", "minfare":
			p.MinimumFare = v
		default:
			fmt.Fprintln(a.out, "Error: unknown pricing field", args[1])
			return common.ErrorValidation
		}
		if p, err = a.api.Pricing.Update(ctx, p); err != nil {
			a.fail(ctx, err, "Could not update pricing")
			return err
		}
	}

	a.table("FIELD\tVALUE", func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "base fare\t%.2f %s\n", p.BaseFare, p.Currency)
		fmt.Fprintf(w, "per km\t%.2f\n", p.PerKm)
		fmt.Fprintf(w, "per minute\t%.2f\n", p.PerMinute)
		fmt.Fprintf(w, "surge\tx%.2f\n", p.SurgeMultiplier)
		fmt.Fprintf(w, "minimum fare\t%.2f\n", p.MinimumFare)
		fmt.Fprintf(w, "10 km / 20 min\t%.2f\n", p.Estimate(10, 20))
	})
	return nil
}

// Promotions lists promotions, or manages one:
//
//	promotions add <CODE> <PERCENT|FIXED> <value> <days>
//	promotions delete <id>
func (a *App) Promotions(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/admin/promotions"); err != nil {
		return err
	}

	switch {
	case len(args) == 5 && args[0] == "add":
		value, err1 := strconv.ParseFloat(args[3], 64)
		days, err2 := strconv.Atoi(args[4])
		if err1 != nil || err2 != nil {
			fmt.Fprintln(a.out, "usage: promotions add <CODE> <PERCENT|FIXED> <value> <days>")
			return common.ErrorValidation
		}
		start := time.Now().UTC()
		promo, err := a.api.Promotions.Create(ctx, dto.PromotionRequest{
			Code:         strings.ToUpper(args[1]),
			DiscountType: strings.ToUpper(args[2]),
			Value:        value,
			StartsAt:     start,
			EndsAt:       start.AddDate(0, 0, days),
			Active:       true,
		})
		if err != nil {
			a.fail(ctx, err, "Could not create the promotion")
			return err
		}
		fmt.Fprintf(a.out, "Created promotion %s (%s)\n", promo.Code, promo.ID)
		return nil

	case len(args) == 2 && args[0] == "delete":
		if err := a.api.Promotions.Delete(ctx, args[1]); err != nil {
			a.fail(ctx, err, "Could not delete the promotion")
			return err
		}
		fmt.Fprintln(a.out, "Deleted.")
		return nil
	}

	page, err := a.api.Promotions.List(ctx, dto.ListQuery{})
	if err != nil {
		a.fail(ctx, err, "Could not load promotions")
		return err
	}
	a.table("ID\tCODE\tTYPE\tVALUE\tUSED\tACTIVE\tENDS", func(w *tabwriter.Writer) {
		for _, p := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%t\t%s\n", p.ID, p.Code, p.DiscountType, p.Value, p.Used, p.Active, p.EndsAt.Format(time.DateOnly))
		}
	})
	return nil
}

// Tickets lists support tickets or closes one:
//
//	tickets [OPEN|CLOSED]
//	tickets close <id>
func (a *App) Tickets(ctx context.Context, args []string) error {
	if err := a.screen(ctx, "/admin/tickets"); err != nil {
		return err
	}

	if len(args) == 2 && args[0] == "close" {
		t, err := a.api.Tickets.Close(ctx, args[1])
		if err != nil {
			a.fail(ctx, err, "Could not close the ticket")
			return err
		}
		fmt.Fprintf(a.out, "Ticket %s is %s\n", t.ID, t.Status)
		return nil
	}

	q := dto.TicketListQuery{}
	if len(args) > 0 {
		q.Status = strings.ToUpper(args[0])
	}
	page, err := a.api.Tickets.List(ctx, q)
	if err != nil {
		a.fail(ctx, err, "Could not load tickets")
		return err
	}
	a.table("ID\tSTATUS\tPRIORITY\tSUBJECT", func(w *tabwriter.Writer) {
		for _, t := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Subject)
		}
	})
	return nil
}

// Reply prompts for a multi-line answer to a ticket.
func (a *App) Reply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: reply <ticket-id>")
		return common.ErrorValidation
	}
	if err := a.screen(ctx, "/admin/tickets/"+args[0]); err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Reply", a.out)
	if err != nil {
		return err
	}
	t, err := a.api.Tickets.Reply(ctx, args[0], dto.ReplyTicketRequest{Body: body})
	if err != nil {
		a.fail(ctx, err, "Could not send the reply")
		return err
	}
	fmt.Fprintf(a.out, "Reply sent (%d messages)\n", len(t.Messages))
	return nil
}

// Report prints a chart series as a bar list:
//
//	report <revenue|orders> <day|week|month|year>
func (a *App) Report(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: report <revenue|orders> <day|week|month|year>")
		return common.ErrorValidation
	}
	if err := a.screen(ctx, "/admin/reports/"+args[0]); err != nil {
		return err
	}

	var (
		s   dto.Series
		err error
	)
	switch args[0] {
	case "revenue":
		s, err = a.api.Reports.Revenue(ctx, args[1])
	case "orders":
		s, err = a.api.Reports.Orders(ctx, args[1])
	default:
		fmt.Fprintln(a.out, "Error: unknown report", args[0])
		return common.ErrorValidation
	}
	if err != nil {
		a.fail(ctx, err, "Could not load the report")
		return err
	}

	peak := 0.0
	for _, p := range s.Points {
		peak = max(peak, p.Value)
	}
	a.table("PERIOD\tVALUE\t", func(w *tabwriter.Writer) {
		for _, p := range s.Points {
			fmt.Fprintf(w, "%s\t%.2f\t%s\n", p.Label, p.Value, bar(p.Value, peak, 30))
		}
	})
	fmt.Fprintf(a.out, "total: %.2f\n", s.Total)
	return nil
}

// Upload sends a local image:
//
//	upload <path> [folder]
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(a.out, "usage: upload <path> [folder]")
		return common.ErrorValidation
	}
	if err := a.screen(ctx, "/upload"); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	defer f.Close()

	folder := ""
	if len(args) == 2 {
		folder = args[1]
	}
	res, err := a.api.Upload.Image(ctx, folder, filepath.Base(args[0]), f)
	if err != nil {
		a.fail(ctx, err, "Upload failed")
		return err
	}
	fmt.Fprintln(a.out, "Uploaded:", res.URL)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func bar(v, peak float64, width int) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := int(v / peak * float64(width))
	return strings.Repeat("#", max(n, 1))
}
