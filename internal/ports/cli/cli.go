package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Amund211/rollcall/internal/app"
	"github.com/Amund211/rollcall/internal/domain"
	"github.com/Amund211/rollcall/internal/logging"
	"github.com/Amund211/rollcall/internal/reporting"
)

var errUsage = errors.New("usage")

func usageError(usage string) error {
	return fmt.Errorf("%w: rollcall %s", errUsage, usage)
}

// Handlers are the operations exposed on the command line
type Handlers struct {
	Login           app.Login
	Logout          app.Logout
	RegisterCompany app.RegisterCompany

	ListEmployees         app.ListEmployees
	GetEmployee           app.GetEmployee
	RegisterEmployee      app.RegisterEmployee
	UpdateEmployee        app.UpdateEmployee
	DeleteEmployee        app.DeleteEmployee
	ResetEmployeePassword app.ResetEmployeePassword

	ListAllAttendance     app.ListAllAttendance
	GetAttendanceByDate   app.GetAttendanceByDate
	GetEmployeeAttendance app.GetEmployeeAttendance

	GetConfig              app.GetConfig
	UpdateConfig           app.UpdateConfig
	GetSavedOfficeLocation app.GetSavedOfficeLocation
	GetDashboard           app.GetDashboard
	IsLate                 app.IsLate

	GetTheme app.GetTheme
	SetTheme app.SetTheme
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type CLI struct {
	handlers Handlers
	stdout   io.Writer
	notifier app.Notifier
	styles   Styles
	nowFunc  func() time.Time

	commands map[string]command
}

func New(handlers Handlers, stdout io.Writer, notifier app.Notifier, styles Styles, nowFunc func() time.Time) *CLI {
	c := &CLI{
		handlers: handlers,
		stdout:   stdout,
		notifier: notifier,
		styles:   styles,
		nowFunc:  nowFunc,
	}

	c.commands = map[string]command{
		"login":            {usage: "login <email> <password>", run: c.login},
		"logout":           {usage: "logout", run: c.logout},
		"register-company": {usage: "register-company <name> <size> <admin name> <admin email> <password>", run: c.registerCompany},
		"employees":        {usage: "employees list|show <id>|register <name> <email> <password> <shift start> <shift end>|update <id> <field> <value>|delete <id>|reset-password <id> <password>", run: c.employees},
		"attendance":       {usage: "attendance all|dates [page]|date <YYYY-MM-DD>|employee <id>", run: c.attendance},
		"config":           {usage: "config show [--refresh]|set-buffer <minutes>|set-location <lat> <lon> <radius km>|set-geofence on|off", run: c.config},
		"geofence":         {usage: "geofence <lat> <lon>", run: c.geofence},
		"late":             {usage: "late <clock in> <shift start>", run: c.late},
		"dashboard":        {usage: "dashboard", run: c.dashboard},
		"theme":            {usage: "theme [light|dark]", run: c.theme},
	}

	return c
}

// Usage lists every command
func (c *CLI) Usage() string {
	names := []string{"login", "logout", "register-company", "employees", "attendance", "config", "geofence", "late", "dashboard", "theme"}

	var b strings.Builder
	b.WriteString("Usage:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  rollcall %s\n", c.commands[name].usage)
	}
	return b.String()
}

// Run executes the command named by args[0] and returns the exit code
func (c *CLI) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(c.stdout, c.Usage())
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		c.notifier.Error(ctx, fmt.Errorf("%w: unknown command %q", errUsage, args[0]))
		fmt.Fprint(c.stdout, c.Usage())
		return 1
	}

	ctx = reporting.NewCommandContext(ctx, args[0])
	ctx = logging.AddMetaToContext(ctx, slog.String("command", args[0]))

	if err := cmd.run(ctx, args[1:]); err != nil {
		// Handlers notify about their own failures
		if errors.Is(err, errUsage) {
			c.notifier.Error(ctx, err)
		}
		return 1
	}
	return 0
}

func (c *CLI) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError(c.commands["login"].usage)
	}

	state, err := c.handlers.Login(ctx, domain.Credentials{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.stdout, "Logged in as %s (%s)\n", state.Username, state.CompanyID)
	return err
}

func (c *CLI) logout(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(c.commands["logout"].usage)
	}
	return c.handlers.Logout(ctx)
}

func (c *CLI) registerCompany(ctx context.Context, args []string) error {
	if len(args) != 5 {
		return usageError(c.commands["register-company"].usage)
	}
	return c.handlers.RegisterCompany(ctx, domain.NewCompany{
		CompanyName: args[0],
		CompanySize: args[1],
		AdminName:   args[2],
		AdminEmail:  args[3],
		Password:    args[4],
	})
}

func (c *CLI) employees(ctx context.Context, args []string) error {
	usage := usageError(c.commands["employees"].usage)
	if len(args) == 0 {
		return usage
	}

	switch args[0] {
	case "list":
		employees, err := c.handlers.ListEmployees(ctx)
		if err != nil {
			return err
		}
		return renderEmployees(c.stdout, c.styles, employees)
	case "show":
		if len(args) != 2 {
			return usage
		}
		employee, err := c.handlers.GetEmployee(ctx, args[1])
		if err != nil {
			return err
		}
		return renderEmployee(c.stdout, c.styles, employee)
	case "register":
		if len(args) != 6 {
			return usage
		}
		return c.handlers.RegisterEmployee(ctx, domain.NewEmployee{
			Name:       args[1],
			Email:      args[2],
			Password:   args[3],
			ShiftStart: args[4],
			ShiftEnd:   args[5],
		})
	case "update":
		if len(args) != 4 {
			return usage
		}
		update, err := employeeUpdate(args[2], args[3])
		if err != nil {
			return err
		}
		return c.handlers.UpdateEmployee(ctx, args[1], update)
	case "delete":
		if len(args) != 2 {
			return usage
		}
		return c.handlers.DeleteEmployee(ctx, args[1])
	case "reset-password":
		if len(args) != 3 {
			return usage
		}
		return c.handlers.ResetEmployeePassword(ctx, args[1], args[2])
	}
	return usage
}

// employeeUpdate changes a single field, named as in the directory
func employeeUpdate(field, value string) (domain.EmployeeUpdate, error) {
	update := domain.EmployeeUpdate{}
	switch field {
	case "first_name":
		update.FirstName = &value
	case "last_name":
		update.LastName = &value
	case "email":
		update.Email = &value
	case "phone_number":
		update.PhoneNumber = &value
	case "job_title":
		update.JobTitle = &value
	case "department":
		update.Department = &value
	case "designation":
		update.Designation = &value
	case "address":
		update.Address = &value
	default:
		return domain.EmployeeUpdate{}, fmt.Errorf(
			"%w: unknown field %q, expected one of first_name, last_name, email, phone_number, job_title, department, designation, address",
			errUsage, field,
		)
	}
	return update, nil
}

func (c *CLI) attendance(ctx context.Context, args []string) error {
	usage := usageError(c.commands["attendance"].usage)
	if len(args) == 0 {
		return usage
	}

	switch args[0] {
	case "all":
		records, err := c.handlers.ListAllAttendance(ctx)
		if err != nil {
			return err
		}
		return renderAttendance(c.stdout, c.styles, records)
	case "dates":
		page := 1
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return usage
			}
			page = parsed
		} else if len(args) > 2 {
			return usage
		}
		dates, totalPages := domain.AttendanceDatePage(c.nowFunc(), page, domain.AttendanceDatesPerPage)
		return renderAttendanceDates(c.stdout, c.styles, dates, page, totalPages)
	case "date":
		if len(args) != 2 {
			return usage
		}
		records, err := c.handlers.GetAttendanceByDate(ctx, args[1])
		if err != nil {
			return err
		}
		return renderAttendance(c.stdout, c.styles, records)
	case "employee":
		if len(args) != 2 {
			return usage
		}
		records, err := c.handlers.GetEmployeeAttendance(ctx, args[1])
		if err != nil {
			return err
		}
		return renderAttendance(c.stdout, c.styles, records)
	}
	return usage
}

func parseFloats(raw ...string) ([]float64, bool) {
	values := make([]float64, 0, len(raw))
	for _, r := range raw {
		value, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, value)
	}
	return values, true
}

func (c *CLI) config(ctx context.Context, args []string) error {
	usage := usageError(c.commands["config"].usage)
	if len(args) == 0 {
		return usage
	}

	switch args[0] {
	case "show":
		refresh := len(args) == 2 && args[1] == "--refresh"
		if len(args) > 2 || (len(args) == 2 && !refresh) {
			return usage
		}
		config, err := c.handlers.GetConfig(ctx, refresh)
		if err != nil {
			return err
		}
		saved, ok, err := c.handlers.GetSavedOfficeLocation(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return renderConfig(c.stdout, c.styles, config, nil)
		}
		return renderConfig(c.stdout, c.styles, config, &saved)
	case "set-buffer":
		if len(args) != 2 {
			return usage
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return usage
		}
		// Settings are replaced as a whole, so start from the current ones
		current, err := c.handlers.GetConfig(ctx, false)
		if err != nil {
			return err
		}
		settings := current.AttendanceSettings
		settings.LateBufferMinutes = minutes
		return c.updateConfig(ctx, domain.ConfigurationUpdate{AttendanceSettings: &settings})
	case "set-location":
		if len(args) != 4 {
			return usage
		}
		values, ok := parseFloats(args[1], args[2], args[3])
		if !ok {
			return usage
		}
		return c.updateConfig(ctx, domain.ConfigurationUpdate{
			OfficeLocation:  &domain.Coordinates{Latitude: values[0], Longitude: values[1]},
			AllowedRadiusKm: &values[2],
		})
	case "set-geofence":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return usage
		}
		enforce := args[1] == "on"
		return c.updateConfig(ctx, domain.ConfigurationUpdate{EnforceGeofence: &enforce})
	}
	return usage
}

func (c *CLI) updateConfig(ctx context.Context, update domain.ConfigurationUpdate) error {
	config, err := c.handlers.UpdateConfig(ctx, update)
	if err != nil {
		return err
	}
	return renderConfig(c.stdout, c.styles, config, nil)
}

func (c *CLI) geofence(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError(c.commands["geofence"].usage)
	}
	values, ok := parseFloats(args[0], args[1])
	if !ok {
		return usageError(c.commands["geofence"].usage)
	}

	config, err := c.handlers.GetConfig(ctx, false)
	if err != nil {
		return err
	}
	return renderGeofence(c.stdout, c.styles, config, domain.Coordinates{Latitude: values[0], Longitude: values[1]})
}

func (c *CLI) late(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError(c.commands["late"].usage)
	}

	late, err := c.handlers.IsLate(ctx, args[0], args[1])
	if err != nil {
		c.notifier.Error(ctx, err)
		return err
	}

	record := domain.AttendanceRecord{Status: domain.StatusPresent}
	if late {
		record.Status = domain.StatusLate
	}
	_, err = fmt.Fprintln(c.stdout, c.styles.StatusBadge(record))
	return err
}

func (c *CLI) dashboard(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(c.commands["dashboard"].usage)
	}

	summary, err := c.handlers.GetDashboard(ctx)
	if err != nil {
		return err
	}
	return renderDashboard(c.stdout, c.styles, summary)
}

func (c *CLI) theme(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		theme, err := c.handlers.GetTheme(ctx)
		if err != nil {
			c.notifier.Error(ctx, err)
			return err
		}
		_, err = fmt.Fprintln(c.stdout, theme)
		return err
	case 1:
		theme, ok := domain.ParseTheme(args[0])
		if !ok {
			return usageError(c.commands["theme"].usage)
		}
		return c.handlers.SetTheme(ctx, theme)
	}
	return usageError(c.commands["theme"].usage)
}
