package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dog-breed-recommender/internal/domain/traits"
)

// prompter hace preguntas secuenciales por stdin, al estilo del
// cuestionario original.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// askInt repregunta hasta obtener un entero dentro del rango.
func (p *prompter) askInt(prompt string, min, max int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s (%d-%d): ", prompt, min, max)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		v, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		if err != nil || v < min || v > max {
			fmt.Fprintf(p.out, "please enter a number between %d and %d\n", min, max)
			continue
		}
		return v, nil
	}
}

// askSign repregunta hasta obtener "positive" o "negative".
func (p *prompter) askSign(prompt string) (traits.Sign, error) {
	for {
		fmt.Fprintf(p.out, "%s (positive/negative): ", prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		switch strings.ToLower(strings.TrimSpace(p.in.Text())) {
		case "positive", "p":
			return traits.SignPositive, nil
		case "negative", "n":
			return traits.SignNegative, nil
		default:
			fmt.Fprintln(p.out, "please answer positive or negative")
		}
	}
}

// askPreferenceQuestions corre el cuestionario de la matriz de decisión.
func askPreferenceQuestions(in io.Reader, out io.Writer) (traits.RawAnswers, error) {
	p := newPrompter(in, out)
	fmt.Fprintln(out, "Rate each criterion by how important it is to you.")

	var a traits.RawAnswers
	var err error

	steps := []struct {
		prompt string
		dst    *int
	}{
		{"Affectionate with family", &a.Affectionate},
		{"Good with young children", &a.GoodWChildren},
		{"Good with other dogs", &a.GoodWOtherDogs},
		{"Shedding level (1 = I don't mind shedding, 5 = shedding is a problem)", &a.Shedding},
		{"Open to strangers", &a.Openness},
		{"High in playfulness", &a.Playfulness},
		{"High in protective nature", &a.Protective},
		{"High in adaptability", &a.Adaptability},
		{"High in trainability", &a.Trainability},
		{"High energy level", &a.Energy},
	}
	for _, step := range steps {
		if *step.dst, err = p.askInt(step.prompt, 1, 5); err != nil {
			return traits.RawAnswers{}, err
		}
	}

	if a.BarkingSign, err = p.askSign("Is a high amount of barking a positive or negative trait?"); err != nil {
		return traits.RawAnswers{}, err
	}
	if a.BarkingImportance, err = p.askInt("How important is the barking criterion?", 1, 5); err != nil {
		return traits.RawAnswers{}, err
	}
	if a.StimulationSign, err = p.askSign("Is needing lots of attention a positive or negative trait?"); err != nil {
		return traits.RawAnswers{}, err
	}
	if a.StimulationImportance, err = p.askInt("How important is the attention criterion?", 1, 5); err != nil {
		return traits.RawAnswers{}, err
	}

	return a, nil
}

// askTreeQuestions pide un valor 1-5 por rasgo, en el orden del árbol.
func askTreeQuestions(in io.Reader, out io.Writer) ([]int, error) {
	p := newPrompter(in, out)
	fmt.Fprintln(out, "Score each trait from 1 to 5.")

	choices := make([]int, 0, len(traits.All()))
	for _, trait := range traits.All() {
		v, err := p.askInt(string(trait), 1, 5)
		if err != nil {
			return nil, err
		}
		choices = append(choices, v)
	}
	return choices, nil
}
