package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/gonzanicorodriguez/juego-topo/internal/mole"
)

var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "topo",
	Short: "Whack-a-mole on four buttons and four LEDs",
	Long: `Hold any button for a second and let go to start a round.
All four LEDs light up, then one LED (the mole) comes on for five to seven
seconds. Hit its button before it goes out. All LEDs blink three times when
you win; the mole's LED blinks three times when it gets away.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play on the Raspberry Pi GPIO header",
	Long: `Play on the Raspberry Pi GPIO header.

Wiring is read from the environment (BCM numbering):
  TOPO_BUTTON_PINS    buttons to ground, internal pull-ups (default 6,13,19,26)
  TOPO_LED_PINS       LEDs, active high (default 12,16,20,21)
  TOPO_POLL_INTERVAL  main loop period (default 1ms)
  TOPO_VERBOSE        log state changes`,
	RunE: runBoard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("topo version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log game state changes")
	rootCmd.AddCommand(runCmd, simCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fmt.Println("topo: starting")
	b, err := openBoard(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Printf("topo: close gpio: %v", err)
		}
	}()

	game := mole.NewGame(newMonoClock(), b, b, rand.New(rand.NewSource(time.Now().UnixNano())))
	if verbose || cfg.Verbose {
		game.OnTransition(logTransitions(game))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(stop)

	pollTick := time.NewTicker(cfg.PollInterval)
	defer pollTick.Stop()

	fmt.Println("topo is running")
	sig := pollLoop(stop, pollTick.C, game.Step)
	fmt.Printf("topo: got %v, stopping\n", sig)
	return nil
}

// pollLoop steps the game on every tick until a signal arrives.
func pollLoop(stop <-chan os.Signal, tick <-chan time.Time, step func()) os.Signal {
	for {
		select {
		case sig := <-stop:
			return sig
		case <-tick:
			step()
		}
	}
}

func logTransitions(g *mole.Game) func(from, to mole.State) {
	return func(from, to mole.State) {
		s := g.Snapshot()
		switch to {
		case mole.StateWin, mole.StateMoleWins:
			log.Printf("topo: %s -> %s (mole %d, hit %d)", from, to, s.Mole, s.Hit)
		case mole.StateStandby:
			log.Printf("topo: %s -> %s, round %s", from, to, s.Result)
		default:
			log.Printf("topo: %s -> %s", from, to)
		}
	}
}
