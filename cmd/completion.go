package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/yawmak/internal/store"
)

// commandNames are the subcommands offered by completion scripts.
var commandNames = []string{
	"add", "list", "done", "update", "search",
	"add-category", "delete-category", "list-categories",
	"add-tag", "delete-tag", "list-tags",
	"import", "export", "browse", "completion", "config", "version", "help",
}

var (
	formatWords   = joinWords(store.Formats)
	strategyWords = joinWords(store.Strategies)
)

const shellWords = "bash zsh fish powershell"

func joinWords[T ~string](values []T) string {
	words := make([]string, len(values))
	for i, v := range values {
		words[i] = string(v)
	}
	return strings.Join(words, " ")
}

// completionCommand writes a shell completion script to w.
func completionCommand(w io.Writer, args []string) error {
	if len(args) != 1 {
		return usageErrorf("completion requires a SHELL (bash, zsh, fish, powershell)")
	}
	var script string
	switch strings.ToLower(args[0]) {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	case "powershell", "pwsh":
		script = powershellCompletion()
	default:
		return usageErrorf("unsupported shell %q (want bash, zsh, fish or powershell)", args[0])
	}
	_, err := fmt.Fprint(w, script)
	return err
}

func bashCompletion() string {
	return `# yawmak bash completion
_yawmak() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "` + strings.Join(commandNames, " ") + `" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        import|export)
            if [ "$COMP_CWORD" -eq 2 ]; then
                COMPREPLY=( $(compgen -W "` + formatWords + `" -- "$cur") )
            elif [ "$COMP_CWORD" -eq 4 ] && [ "${COMP_WORDS[1]}" = "import" ]; then
                COMPREPLY=( $(compgen -W "` + strategyWords + `" -- "$cur") )
            else
                COMPREPLY=( $(compgen -f -- "$cur") )
            fi
            ;;
        completion)
            COMPREPLY=( $(compgen -W "` + shellWords + `" -- "$cur") )
            ;;
        add)
            COMPREPLY=( $(compgen -W "--category --tags --priority --due-date" -- "$cur") )
            ;;
        list)
            COMPREPLY=( $(compgen -W "--done-only --all" -- "$cur") )
            ;;
        update)
            COMPREPLY=( $(compgen -W "--task --due-date --category --tags --priority --undone" -- "$cur") )
            ;;
    esac
    return 0
}
complete -F _yawmak yawmak
`
}

func zshCompletion() string {
	return `#compdef yawmak
# yawmak zsh completion

_yawmak() {
    local -a commands
    commands=(` + strings.Join(commandNames, " ") + `)

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
        import|export)
            if (( CURRENT == 3 )); then
                _values 'format' ` + formatWords + `
            elif (( CURRENT == 5 )) && [[ "${words[2]}" == import ]]; then
                _values 'strategy' ` + strategyWords + `
            else
                _files
            fi
            ;;
        completion)
            _values 'shell' ` + shellWords + `
            ;;
        add)
            _arguments '--category[category]:category:' '--tags[tags]:tags:' '--priority[priority]:priority:' '--due-date[due date]:date:'
            ;;
        list)
            _arguments '--done-only[only completed tasks]' '--all[all tasks]'
            ;;
        update)
            _arguments '--task[name]:name:' '--due-date[due date]:date:' '--category[category]:category:' '--tags[tags]:tags:' '--priority[priority]:priority:' '--undone[mark not done]'
            ;;
    esac
}

_yawmak "$@"
`
}

func fishCompletion() string {
	var b strings.Builder
	b.WriteString("# yawmak fish completion\n")
	b.WriteString("complete -c yawmak -f\n")
	fmt.Fprintf(&b, "complete -c yawmak -n '__fish_use_subcommand' -a '%s'\n", strings.Join(commandNames, " "))
	fmt.Fprintf(&b, "complete -c yawmak -n '__fish_seen_subcommand_from import export' -a '%s'\n", formatWords)
	fmt.Fprintf(&b, "complete -c yawmak -n '__fish_seen_subcommand_from import' -a '%s'\n", strategyWords)
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from import export' -F\n")
	fmt.Fprintf(&b, "complete -c yawmak -n '__fish_seen_subcommand_from completion' -a '%s'\n", shellWords)
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from add update' -l category -r\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from add update' -l tags -r\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from add update' -l priority -r\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from add update' -l due-date -r\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from update' -l task -r\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from update' -l undone\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from list' -l done-only\n")
	b.WriteString("complete -c yawmak -n '__fish_seen_subcommand_from list' -l all\n")
	return b.String()
}

func powershellCompletion() string {
	quoted := make([]string, len(commandNames))
	for i, c := range commandNames {
		quoted[i] = "'" + c + "'"
	}
	return `# yawmak PowerShell completion
Register-ArgumentCompleter -Native -CommandName yawmak -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }
    $commands = @(` + strings.Join(quoted, ", ") + `)
    $candidates = $commands
    if ($words.Count -ge 2) {
        switch ($words[1]) {
            { $_ -in 'import', 'export' } { $candidates = '` + formatWords + `' -split ' ' }
            'completion' { $candidates = '` + shellWords + `' -split ' ' }
        }
        if ($words[1] -eq 'import' -and $words.Count -ge 4) {
            $candidates = '` + strategyWords + `' -split ' '
        }
    }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
}
