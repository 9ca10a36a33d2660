package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/abdidvp/inventario/internal/adapters/outbound/tui"
	"github.com/abdidvp/inventario/internal/domain"
)

// ErrInputClosed is returned when input ends before the exit option is chosen.
// Codes added in that session are discarded.
var ErrInputClosed = errors.New("input closed before exit, uncommitted codes discarded")

// Inventory is the set of operations reachable from the menus.
type Inventory interface {
	AddManual(ctx context.Context, code string) (domain.Batch, error)
	AddFromDevice(ctx context.Context) (domain.Batch, error)
	List(ctx context.Context) ([]domain.ProductCode, error)
	Sell(ctx context.Context) error
	Configure(ctx context.Context) error
}

// Dispatcher runs the numbered menus. It owns the session: the store is
// committed and closed on the exit option, and closed without commit when
// input runs out.
type Dispatcher struct {
	inventory Inventory
	session   domain.Session
	in        *bufio.Reader
	out       io.Writer
	logger    *zap.Logger
	state     State
}

// New creates a dispatcher in the MainMenu state.
func New(inventory Inventory, session domain.Session, in io.Reader, out io.Writer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		inventory: inventory,
		session:   session,
		in:        bufio.NewReader(in),
		out:       out,
		logger:    logger,
		state:     MainMenu,
	}
}

// State returns the current state.
func (d *Dispatcher) State() State { return d.state }

// Run handles input until the dispatcher terminates.
func (d *Dispatcher) Run(ctx context.Context) error {
	for d.state != Terminated {
		if err := d.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step shows the current menu, reads one choice and applies it.
func (d *Dispatcher) Step(ctx context.Context) error {
	switch d.state {
	case MainMenu:
		d.print(tui.RenderMainMenu())
	case AddMenu:
		d.print(tui.RenderAddMenu())
	default:
		return nil
	}

	choice, err := d.readLine()
	if err != nil {
		return d.abort(err)
	}

	if d.state == AddMenu {
		return d.handleAdd(ctx, choice)
	}
	return d.handleMain(ctx, choice)
}

func (d *Dispatcher) handleMain(ctx context.Context, choice string) error {
	switch choice {
	case choiceAdd:
		d.transition(AddMenu)

	case choiceList:
		codes, err := d.inventory.List(ctx)
		if err != nil {
			d.print(tui.RenderFailure(err))
			return nil
		}
		d.print(tui.RenderInventory(codes))

	case choiceSell:
		d.print(tui.RenderFailure(d.inventory.Sell(ctx)))

	case choiceConfigure:
		d.print(tui.RenderFailure(d.inventory.Configure(ctx)))
		d.print(tui.RenderPressEnter())
		if _, err := d.readLine(); err != nil {
			return d.abort(err)
		}

	case choiceExit:
		d.transition(Terminated)
		if err := d.session.Close(true); err != nil {
			d.logger.Error("saving inventory", zap.Error(err))
			d.print(tui.RenderFailure(err))
			return fmt.Errorf("saving inventory: %w", err)
		}
		d.print(tui.RenderGoodbye())

	default:
		d.logger.Debug("unrecognized option", zap.String("input", choice))
		d.print(tui.RenderUnknownOption())
	}
	return nil
}

func (d *Dispatcher) handleAdd(ctx context.Context, choice string) error {
	switch choice {
	case choiceManual:
		return d.addManual(ctx)

	case choiceAutomatic:
		batch, err := d.inventory.AddFromDevice(ctx)
		d.report(batch, err)

	default:
		d.transition(MainMenu)
	}
	return nil
}

// addManual prompts until a non-empty code is entered.
func (d *Dispatcher) addManual(ctx context.Context) error {
	for {
		d.print(tui.RenderCodePrompt())
		line, err := d.readLine()
		if err != nil {
			return d.abort(err)
		}

		batch, err := d.inventory.AddManual(ctx, line)
		if domain.IsKind(err, domain.KindValidation) {
			d.print(tui.RenderFailure(err))
			continue
		}
		d.report(batch, err)
		return nil
	}
}

func (d *Dispatcher) report(batch domain.Batch, err error) {
	if err != nil {
		d.print(tui.RenderAddFailed(batch, err))
		return
	}
	d.print(tui.RenderAdded(batch))
}

// abort ends the session without committing.
func (d *Dispatcher) abort(readErr error) error {
	d.transition(Terminated)
	closeErr := d.session.Close(false)

	if errors.Is(readErr, io.EOF) {
		d.logger.Warn("input closed before exit")
		readErr = ErrInputClosed
	} else {
		readErr = fmt.Errorf("reading input: %w", readErr)
	}
	return errors.Join(readErr, closeErr)
}

func (d *Dispatcher) transition(next State) {
	d.logger.Debug("state change", zap.Stringer("from", d.state), zap.Stringer("to", next))
	d.state = next
}

// readLine returns one line without surrounding whitespace. A final line
// without a newline is still returned; io.EOF only comes once input is drained.
func (d *Dispatcher) readLine() (string, error) {
	line, err := d.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (d *Dispatcher) print(s string) {
	fmt.Fprint(d.out, s)
}
