package printer

import (
	"fmt"
	"log/slog"
)

// State is the sequencer's position in the fixed operational sequence.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateResetting
	StateFeeding
	StateCutting
	StateHalfCutting
	StatePreparing
	StateConfiguring
	StateTransferring
	StateCancelling
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateResetting:
		return "resetting"
	case StateFeeding:
		return "feeding"
	case StateCutting:
		return "cutting"
	case StateHalfCutting:
		return "half-cutting"
	case StatePreparing:
		return "preparing"
	case StateConfiguring:
		return "configuring"
	case StateTransferring:
		return "transferring"
	case StateCancelling:
		return "cancelling"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Raster transfer limits: a block carries at most 60 pattern bytes, and
// every 8192 pattern bytes close a page the device must be told to print.
const (
	rasterBlockMax = 60
	pageBytes      = 8192
)

// Session owns the device handle and option set for one invocation and
// composes commands into the fixed operational sequences. Exactly one
// command/response exchange is in flight at any time.
type Session struct {
	tr    *Transport
	opts  Options
	state State
}

func NewSession(dev Device, opts Options) *Session {
	return &Session{
		tr:    NewTransport(dev),
		opts:  opts,
		state: StateIdle,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) enter(state State) {
	s.state = state
	slog.Debug("Sequencer state", "state", state.String())
}

// exec sends one command and validates its response. Transport faults come
// back as *TransportError; a bad response wraps ErrMismatch and carries
// the command name. The raw response is returned for commands whose
// payload matters beyond validation.
func (s *Session) exec(c Command) ([]byte, error) {
	if err := s.tr.Send(c.Frame, c.Size); err != nil {
		return nil, err
	}
	if c.Check == nil {
		return nil, nil
	}
	rsp, err := s.tr.Receive()
	if err != nil {
		return nil, err
	}
	if err := c.Check(rsp); err != nil {
		return rsp, fmt.Errorf("%s: %w", c.Name, err)
	}
	return rsp, nil
}

// execLenient runs a command whose failure does not gate the sequence.
// Mismatches are logged and swallowed; transport faults still abort.
func (s *Session) execLenient(c Command) error {
	_, err := s.exec(c)
	if err == nil {
		return nil
	}
	if IsTransportError(err) {
		return err
	}
	slog.Warn("Command failed", "err", err)
	return nil
}

func (s *Session) execSteps(cmds []Command) error {
	for _, c := range cmds {
		if _, err := s.exec(c); err != nil {
			return err
		}
	}
	return nil
}

// Run performs one operation end to end: the common status check and
// reset, the per-operation branch, and for the print branch the mandatory
// trailing cancel. A non-nil result is either a protocol mismatch (the
// device was still closed out) or a fatal *TransportError (it was not).
func (s *Session) Run(op Operation, pattern []byte) error {
	slog.Info("Starting printer operation", "operation", op.String())

	// The opening status check and reset are advisory; the print branch
	// repeats both with their results enforced.
	s.enter(StateChecking)
	if err := s.execLenient(StatusCheck()); err != nil {
		return err
	}
	s.enter(StateResetting)
	if err := s.execLenient(Reset()); err != nil {
		return err
	}

	var err error
	switch op {
	case OperationFeed:
		s.enter(StateFeeding)
		_, err = s.exec(TapeFeed())
	case OperationCut:
		s.enter(StateCutting)
		_, err = s.exec(TapeCut())
	case OperationHalfCut:
		s.enter(StateHalfCutting)
		_, err = s.exec(TapeHalfCut())
	case OperationPrint:
		err = s.print(pattern)
	}
	if IsTransportError(err) {
		return err
	}

	s.enter(StateDone)
	return err
}

// print runs the job setup steps and the raster transfer, short-circuiting
// at the first failure. The closing cancel is sent even on full success;
// the device's own software always closes a job this way.
func (s *Session) print(pattern []byte) error {
	s.enter(StatePreparing)
	failure := s.execSteps([]Command{
		PrejobConfig1(),
		PrejobConfig2(),
		TapeCheck(s.opts.Tape),
		Reset(),
	})

	if failure == nil {
		s.enter(StateConfiguring)
		failure = s.execSteps([]Command{
			SpeedAdjust(),
			MarginSelect(s.opts.Margin),
			DensitySelect(s.opts.Density),
			CutterSelect(s.opts.Cutter),
			StatusCheck(),
		})
	}

	if failure == nil {
		s.enter(StateTransferring)
		failure = s.sendRaster(pattern)
	}

	if IsTransportError(failure) {
		return failure
	}
	if failure != nil {
		slog.Error("Print job aborted", "err", failure)
	}

	s.enter(StateCancelling)
	if _, err := s.exec(CancelJob()); err != nil {
		return err
	}
	return failure
}

// sendRaster streams the pattern buffer to the device. A block is flushed
// when it reaches 60 bytes, when a 8192-byte page boundary is hit, or at
// the end of the buffer; the final flush is followed by a raster end, and
// each page boundary and the end of the buffer by a print page.
func (s *Session) sendRaster(pattern []byte) error {
	block := make([]byte, 0, rasterBlockMax)
	sent, page := 0, 0

	for sent < len(pattern) {
		block = append(block, pattern[sent])
		sent++
		page++

		if len(block) < rasterBlockMax && page < pageBytes && sent < len(pattern) {
			continue
		}
		if _, err := s.exec(RasterBlock(block)); err != nil {
			return err
		}
		block = block[:0]

		if sent == len(pattern) {
			if _, err := s.exec(RasterEnd()); err != nil {
				return err
			}
		}
		if page == pageBytes || sent == len(pattern) {
			if _, err := s.exec(PrintPage()); err != nil {
				return err
			}
			page = 0
		}
	}
	return nil
}

// MountedTape asks the printer which tape cartridge is loaded.
func (s *Session) MountedTape() (TapeCode, error) {
	rsp, err := s.exec(TapeReport())
	if err != nil {
		return TapeNone, err
	}
	return TapeFromReport(rsp[4]), nil
}

// Prefeed advances the tape by the given amount before a job.
func (s *Session) Prefeed(amount byte) error {
	_, err := s.exec(PrefeedTape(amount))
	return err
}
