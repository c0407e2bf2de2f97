package main

import (
	"fmt"
	"log"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/taito-invaders/invaders8080/invaders"
)

var (
	flagCPM   bool
	flagDebug bool
	flagLog   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "invaders8080",
		Short: "Intel 8080 emulator for the Space Invaders arcade cabinet",
	}

	runCmd := &cobra.Command{
		Use:   "run <program_file>",
		Short: "Load and run a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE:  runROM,
	}
	runCmd.Flags().BoolVar(&flagCPM, "cpm", false, "load at 0x100 in CP/M-80 compatibility mode")
	runCmd.Flags().BoolVar(&flagDebug, "debug", false, "log a disassembly of the ROM, then the opcode at PC at the start of each frame")
	runCmd.Flags().StringVar(&flagLog, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runROM(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(&invaders.RomError{Path: path, Err: err}, "load rom")
	}

	logOut, closeLog, err := openLog(flagLog)
	if err != nil {
		return err
	}
	defer closeLog()

	mode := invaders.ModeInvaders
	if flagCPM {
		mode = invaders.ModeCPM
	}

	portMode := invaders.PermissiveMode
	if flagCPM {
		portMode = invaders.StrictMode
	}

	machine := invaders.NewMachine(portMode, logOut)
	if err := invaders.LoadROM(machine.Bus.Memory, data, mode, path); err != nil {
		return err
	}
	loadAddr := invaders.LoadAddr(mode)
	machine.CPU.PC = loadAddr

	if flagDebug {
		endAddr := loadAddr + uint16(len(data)) - 1
		for _, line := range machine.CPU.DisassembleRange(loadAddr, endAddr) {
			machine.CPU.Logger.Println(line)
		}
	}

	rasterizer := invaders.NewRasterizer()
	scheduler := invaders.NewScheduler(machine, rasterizer)

	var exitErr error
	pixelgl.Run(func() {
		display := NewDisplay()
		controller := NewController(display.window)
		scene := invaders.NewScene(machine, scheduler, controller, display)

		for !display.Closed() {
			if flagDebug {
				opcode := machine.Bus.Memory.ReadByte(machine.CPU.PC)
				machine.CPU.Logger.Printf("pc=%#04x op=%s", machine.CPU.PC, machine.CPU.Disassemble(opcode))
			}
			if err := scene.RunOnce(); err != nil {
				exitErr = err
				return
			}
		}
	})

	return exitErr
}

func openLog(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %q", path)
	}
	return f, func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("closing log file: %v", cerr)
		}
	}, nil
}
