package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(label string, def bool) bool {
	answer := strings.ToLower(prompt(label))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

// promptVaccinePreference mirrors the first-dose preference question.
func promptVaccinePreference() string {
	fmt.Println("Do you have a vaccine preference?")
	switch prompt("Enter 0 for No Preference, 1 for COVISHIELD, 2 for COVAXIN, Default 0: ") {
	case "1":
		return "COVISHIELD"
	case "2":
		return "COVAXIN"
	default:
		return ""
	}
}

func promptCenterPreference() string {
	if !promptYesNo("Do you have a hospital preference? (y/n Default n): ", false) {
		return ""
	}
	return prompt("Enter a unique part of the hospital name, like max or fortis: ")
}

const beneficiaryNotes = `
################# IMPORTANT NOTES #################
# 1. Select beneficiaries that are all taking the same dose: either first
#    OR second. Do not club a first-dose booking with a second-dose one.
# 2. Beneficiaries selected for a second dose must all be taking the same
#    vaccine: COVISHIELD or COVAXIN, not a mix.
# 3. When selecting multiple beneficiaries, make sure all are in the same
#    age group as defined by the government.
###################################################
`
