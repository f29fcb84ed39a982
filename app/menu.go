package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wojtekolesinski/battleships-solo/bot"
)

var strategyDescriptions = map[string]string{
	bot.KindHunt:   "hunt: fires at random until it hits, then follows the ship",
	bot.KindRandom: "random: fires at random cells",
}

// ChooseStrategy asks on out which targeting strategy the computer should
// use and reads the answer from in. Invalid answers are asked again.
func ChooseStrategy(in io.Reader, out io.Writer, kinds []string) (string, error) {
	if len(kinds) == 0 {
		return "", fmt.Errorf("app.ChooseStrategy: no strategies to choose from")
	}
	choice, err := promptList(in, out, kinds, 1, func(kind string) string {
		if desc, ok := strategyDescriptions[kind]; ok {
			return desc
		}
		return kind
	})
	if err != nil {
		return "", fmt.Errorf("app.ChooseStrategy: %w", err)
	}
	return kinds[choice-1], nil
}

func promptList[T any](in io.Reader, out io.Writer, list []T, start int, mapper func(T) string) (int, error) {
	fmt.Fprintln(out, "Choose the CPU strategy:")
	for i, el := range list {
		fmt.Fprintf(out, "(%d)\t%s\n", start+i, mapper(el))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Your choice: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(out, "Try again: %s\n", err)
			continue
		}
		if choice >= start && choice < len(list)+start {
			return choice, nil
		}
		fmt.Fprintf(out, "Try again: pick a number between %d and %d\n", start, len(list)+start-1)
	}
}
