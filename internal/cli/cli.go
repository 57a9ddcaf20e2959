/*
Copyright © 2024 the geodesy authors.
This file is part of geodesy.

geodesy is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geodesy is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geodesy.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cli implements kp, the command-line front end to the geodesy
// engine: it reads whitespace-separated coordinate tuples (one per line)
// from a file or stdin, runs them through a single compiled operation, and
// writes the transformed tuples back out. Its flag and configuration
// handling follows the cobra/pflag/viper stack.
package cli

import (
	"bufio"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/geodesy"
	"github.com/spatialmodel/geodesy/reference"
)

// Cfg bundles the root command, the pflag.FlagSet backing its persistent
// flags, and the viper instance those flags are bound into, mirroring the
// configuration-object pattern used throughout the wider example this
// engine grew out of: a single struct threaded through command
// constructors rather than package-level globals.
type Cfg struct {
	V     *viper.Viper
	Root  *cobra.Command
	Flags *pflag.FlagSet
}

// NewCfg builds the "kp" root command and binds its persistent flags into a
// fresh viper instance.
func NewCfg() *Cfg {
	c := &Cfg{V: viper.New()}
	c.Root = &cobra.Command{
		Use:   "kp [operation] [file]",
		Short: "kp transforms geodetic coordinates through a geodesy operation",
		Long: `kp compiles a textual operator or pipeline definition (block or
shorthand syntax) and applies it to whitespace-separated coordinate tuples,
one per line, read from a file or from standard input.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.run,
	}
	c.Flags = c.Root.Flags()
	c.Flags.BoolP("inv", "i", false, "run the operation in the inverse direction")
	c.Flags.BoolP("debug", "d", false, "dump the compiled operation before running it")
	c.Flags.StringP("output", "o", "-", `output file, or "-" for stdout`)
	// glog registers "-v", "-logtostderr" and friends on the stdlib flag
	// package; folding that set into cobra's own pflag.FlagSet lets a
	// single parse pass handle both, so "-v 2" on the kp command line
	// reaches glog.V directly, with no separate flag.Parse() call racing
	// cobra's own.
	c.Flags.AddGoFlagSet(goflag.CommandLine)
	_ = c.V.BindPFlags(c.Flags)
	return c
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewCfg().Root.Execute()
}

func (c *Cfg) run(cmd *cobra.Command, args []string) error {
	definition := args[0]
	inputPath := "-"
	if len(args) > 1 {
		inputPath = args[1]
	}

	ctx := geodesy.NewContext()
	ctx.SetAssetSource(reference.DefaultProvider())

	handle, err := ctx.Operation(definition)
	if err != nil {
		return fmt.Errorf("compiling %q: %w", definition, err)
	}

	if c.V.GetBool("debug") {
		op, _ := ctx.Op(handle)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", describe(op))
	}

	in, closeIn, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(c.V.GetString("output"))
	if err != nil {
		return err
	}
	defer closeOut()

	coords, err := readCoordinates(in)
	if err != nil {
		return err
	}

	set := geodesy.Coor4DSlice(coords)
	var ok int
	if c.V.GetBool("inv") {
		ok, err = ctx.Inverse(handle, set)
	} else {
		ok, err = ctx.Forward(handle, set)
	}
	if err != nil {
		return err
	}
	glog.V(1).Infof("transformed %d/%d coordinates", ok, len(coords))

	return writeCoordinates(out, coords)
}

func describe(op *geodesy.Op) string {
	if op == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (steps=%d invertible=%v)", op.Descriptor.Name, len(op.Steps), op.Invertible())
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, geodesy.WrapIO(err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" || path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, geodesy.WrapIO(err)
	}
	return f, func() { f.Close() }, nil
}

func readCoordinates(r io.Reader) ([]geodesy.Coor4D, error) {
	var out []geodesy.Coor4D
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		var c geodesy.Coor4D
		for i := 0; i < len(fields) && i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("malformed coordinate %q: %w", line, err)
			}
			c[i] = v
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, geodesy.WrapIO(err)
	}
	return out, nil
}

func writeCoordinates(w io.Writer, coords []geodesy.Coor4D) error {
	bw := bufio.NewWriter(w)
	for _, c := range coords {
		if _, err := fmt.Fprintf(bw, "%.10f %.10f %.6f %.6f\n", c[0], c[1], c[2], c[3]); err != nil {
			return geodesy.WrapIO(err)
		}
	}
	return bw.Flush()
}
