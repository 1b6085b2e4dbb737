package cli

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diceproto/fairdice/pkg/dice"
	"github.com/diceproto/fairdice/pkg/game"
	"github.com/diceproto/fairdice/pkg/pool"
	"github.com/diceproto/fairdice/pkg/prob"
	"github.com/diceproto/fairdice/pkg/transcript"
)

// errExit signals that the user chose to leave the game.
var errExit = errors.New("cli: user exit")

// Run executes the command: either verify a transcript, or play one game on
// stdin/stdout.
func Run(ctx context.Context, cfg Config) error {
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.Disabled)
	if cfg.Verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	if cfg.Verify != "" {
		return runVerify(ctx, cfg.Verify, os.Stdout)
	}

	ds, err := dice.Parse(cfg.Dice)
	if err != nil {
		return fmt.Errorf("%w\nexample: fairdice 2,2,4,4,9,9 6,8,1,1,8,6 7,5,3,7,5,3", err)
	}

	workers := pool.NewPool(cfg.Workers)
	defer workers.TearDown()

	r := &runner{
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		log:     log,
		dice:    ds,
		workers: workers,
		tr:      transcript.New(ds),
	}
	err = r.run(ctx)
	if errors.Is(err, errExit) {
		err = nil
	}
	if err == nil && cfg.Receipt {
		r.printReceipt()
	}
	return err
}

// runVerify decodes a hex transcript and re-derives every receipt.
func runVerify(ctx context.Context, arg string, out io.Writer) error {
	data, err := hex.DecodeString(strings.TrimSpace(arg))
	if err != nil {
		return fmt.Errorf("decode transcript: %w", err)
	}
	var tr transcript.Transcript
	if err := tr.UnmarshalBinary(data); err != nil {
		return err
	}
	if err := transcript.Verify(ctx, &tr); err != nil {
		return err
	}
	fmt.Fprintf(out, "transcript OK: %d exchanges over dice %s\n",
		len(tr.Receipts), strings.Join(tr.Dice, " "))
	return nil
}

// runner holds the state of one interactive game.
type runner struct {
	in      *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger
	dice    dice.Pool
	workers *pool.Pool
	tr      *transcript.Transcript
}

func (r *runner) run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Let's determine who makes the first move.")
	toss, err := r.fairNumber(ctx, "first move", 1)
	if err != nil {
		return err
	}
	userFirst := toss.Result == 1

	var userDie, compDie *dice.Die
	if userFirst {
		fmt.Fprintln(r.out, "You make the first move.")
		userDie, err = r.chooseUserDie(ctx, r.dice)
		if err != nil {
			return err
		}
		compDie, err = game.ChooseBest(r.dice.Without(userDie.ID()))
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "I choose the [%s] die.\n", compDie)
	} else {
		compDie, err = game.ChooseBest(r.dice)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "I make the first move and choose the [%s] die.\n", compDie)
		userDie, err = r.chooseUserDie(ctx, r.dice.Without(compDie.ID()))
		if err != nil {
			return err
		}
	}

	first, second := userDie, compDie
	firstLabel, secondLabel := "your", "my"
	if !userFirst {
		first, second = compDie, userDie
		firstLabel, secondLabel = "my", "your"
	}

	firstFace, err := r.roll(ctx, firstLabel, first)
	if err != nil {
		return err
	}
	secondFace, err := r.roll(ctx, secondLabel, second)
	if err != nil {
		return err
	}

	userFace, compFace := firstFace, secondFace
	if !userFirst {
		userFace, compFace = secondFace, firstFace
	}
	switch game.Compare(userFace, compFace) {
	case game.UserWins:
		fmt.Fprintf(r.out, "You win (%d > %d)!\n", userFace, compFace)
	case game.ComputerWins:
		fmt.Fprintf(r.out, "I win (%d > %d)!\n", compFace, userFace)
	default:
		fmt.Fprintf(r.out, "It's a tie (%d = %d)!\n", userFace, compFace)
	}
	return nil
}

// roll performs one fair roll for the named player's die and returns the
// rolled face value.
func (r *runner) roll(ctx context.Context, label string, d *dice.Die) (int, error) {
	fmt.Fprintf(r.out, "It's time for %s roll.\n", label)
	out, err := r.fairNumber(ctx, label+" roll", int64(d.Len()-1))
	if err != nil {
		return 0, err
	}
	face := d.Face(int(out.Result))
	fmt.Fprintf(r.out, "The roll result is %d (face %d of [%s]).\n", face, out.Result, d)
	return face, nil
}

// fairNumber runs one full commit, contribute, reveal exchange. The digest is
// printed before the user's number is read, and the secret and key only after
// the combination, which is the ordering the fairness guarantee rests on.
func (r *runner) fairNumber(ctx context.Context, purpose string, rangeSize int64) (game.Outcome, error) {
	exch, err := game.NewExchange(purpose, rangeSize)
	if err != nil {
		return game.Outcome{}, err
	}
	fmt.Fprintf(r.out, "I selected a random value in the range 0..%d (HMAC=%s).\n",
		rangeSize, exch.Digest())
	r.log.Debug().Str("purpose", purpose).Int64("range", rangeSize).
		Str("digest", exch.Digest().String()).Msg("commitment published")

	value, err := r.selectNumber(ctx, fmt.Sprintf("Add your number modulo %d.", rangeSize+1), rangeSize)
	if err != nil {
		return game.Outcome{}, err
	}

	out, err := exch.Resolve(value)
	if err != nil {
		return game.Outcome{}, err
	}
	fmt.Fprintf(r.out, "My number is %d (KEY=%s).\n", out.Secret, out.Key)
	fmt.Fprintf(r.out, "The fair number generation result is %d + %d = %d (mod %d).\n",
		out.Secret, out.Counterpart, out.Result, rangeSize+1)
	r.log.Debug().Str("purpose", purpose).Int64("secret", out.Secret).
		Int64("result", out.Result).Msg("commitment revealed")

	r.tr.Append(out)
	return out, nil
}

// chooseUserDie prompts the user to pick a die from the available set.
func (r *runner) chooseUserDie(ctx context.Context, available dice.Pool) (*dice.Die, error) {
	fmt.Fprintln(r.out, "Choose your die:")
	choice, err := r.selectOption(ctx, func() {
		for i, d := range available {
			fmt.Fprintf(r.out, "%d - %s\n", i, d)
		}
	}, int64(len(available)-1))
	if err != nil {
		return nil, err
	}
	d := available[choice]
	fmt.Fprintf(r.out, "You choose the [%s] die.\n", d)
	return d, nil
}

// selectNumber prompts for an integer in [0, max].
func (r *runner) selectNumber(ctx context.Context, title string, max int64) (int64, error) {
	fmt.Fprintln(r.out, title)
	return r.selectOption(ctx, func() {
		for i := int64(0); i <= max; i++ {
			fmt.Fprintf(r.out, "%d - %d\n", i, i)
		}
	}, max)
}

// selectOption shows a menu plus the X and ? options and reads a selection,
// re-prompting on invalid input. ? renders the probability table.
func (r *runner) selectOption(ctx context.Context, menu func(), max int64) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		menu()
		fmt.Fprintln(r.out, "X - exit")
		fmt.Fprintln(r.out, "? - help")
		fmt.Fprint(r.out, "Your selection: ")
		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return 0, err
			}
			return 0, errExit
		}
		input := strings.TrimSpace(r.in.Text())
		switch strings.ToUpper(input) {
		case "X":
			fmt.Fprintln(r.out, "Goodbye!")
			return 0, errExit
		case "?":
			r.help()
			continue
		}
		v, err := strconv.ParseInt(input, 10, 64)
		if err != nil || v < 0 || v > max {
			fmt.Fprintf(r.out, "Invalid selection %q, try again.\n", input)
			continue
		}
		return v, nil
	}
}

// help renders the win-probability table over the full die set.
func (r *runner) help() {
	fmt.Fprintln(r.out, "Probability of the win for the user:")
	renderMatrix(r.out, r.dice, prob.Matrix(r.workers, r.dice))
}

// printReceipt dumps the transcript as hex for third-party verification.
func (r *runner) printReceipt() {
	data, err := r.tr.MarshalBinary()
	if err != nil {
		r.log.Error().Err(err).Msg("encode transcript")
		return
	}
	fmt.Fprintf(r.out, "Game transcript (verify with -verify):\n%s\n", hex.EncodeToString(data))
}
