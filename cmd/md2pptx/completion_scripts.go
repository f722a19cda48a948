package main

import (
	"fmt"
	"strings"
)

// bashScript renders a bash completion function.
func bashScript(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for md2pptx\n")
	b.WriteString("_md2pptx_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(commandNames(commands), " "))
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			var plain []string
			for _, f := range c.Flags {
				if !f.takesValue() {
					continue
				}
				action := bashValueAction(f)
				if action == "" {
					plain = append(plain, f.names()...)
					continue
				}
				fmt.Fprintf(&b, "                %s)\n", strings.Join(f.names(), "|"))
				fmt.Fprintf(&b, "                    %s\n", action)
				b.WriteString("                    return ;;\n")
			}
			if len(plain) > 0 {
				fmt.Fprintf(&b, "                %s)\n", strings.Join(plain, "|"))
				b.WriteString("                    return ;;\n")
			}
			b.WriteString("            esac\n")

			var all []string
			for _, f := range c.Flags {
				all = append(all, f.names()...)
			}
			b.WriteString("            if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(all, " "))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "            COMPREPLY=( %s $(compgen -d -- \"${cur}\") )\n", bashFiles(c.FilePattern))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _md2pptx_completions md2pptx\n")
	return b.String()
}

func bashValueAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"${cur}\") )", strings.Join(f.Values, " "))
	case flagDir:
		return "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
	case flagFile:
		return fmt.Sprintf("COMPREPLY=( %s $(compgen -d -- \"${cur}\") )", bashFiles(f.FileGlob))
	}
	return ""
}

func bashFiles(pattern string) string {
	var parts []string
	for _, g := range globs(pattern) {
		parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"${cur}\")", g))
	}
	return strings.Join(parts, " ")
}

// zshScript renders a zsh completion function for compinit.
func zshScript(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef md2pptx\n\n")
	b.WriteString("_md2pptx() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0 || c.TakesFiles:
			b.WriteString("            _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
			}
			if c.TakesFiles {
				fmt.Fprintf(&b, "                '*:markdown file:_files -g \"%s\"'\n", strings.Join(globs(c.FilePattern), " "))
			} else {
				b.WriteString("                '*::'\n")
			}
		case c.Name == "help":
			b.WriteString("            _describe 'command' commands\n")
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            _values 'value' %s\n", strings.Join(c.Args, " "))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2pptx md2pptx\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"
	action := ""
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		action = ":directory:_files -/"
	case flagFile:
		action = ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
	default:
		action = ":value:"
	}

	repeat := ""
	if f.Repeatable {
		repeat = "*"
	}
	if f.Short == "" {
		return fmt.Sprintf("'%s--%s%s%s'", repeat, f.Long, desc, action)
	}
	exclusion := "(-" + f.Short + " --" + f.Long + ")"
	if f.Repeatable {
		exclusion = "*"
	}
	return fmt.Sprintf("'%s'{-%s,--%s}'%s%s'", exclusion, f.Short, f.Long, desc, action)
}

var zshEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshEscape(s string) string { return zshEscaper.Replace(s) }

// fishScript renders fish complete commands.
func fishScript(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for md2pptx\n")
	b.WriteString("function __fish_md2pptx_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2pptx_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2pptx -f\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c md2pptx -n __fish_md2pptx_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range commands {
		cond := fmt.Sprintf("-n '__fish_md2pptx_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2pptx %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += fmt.Sprintf(" -r -a '(__fish_complete_suffix %s)'", strings.Join(suffixes(f.FileGlob), " "))
			default:
				line += " -x"
			}
			fmt.Fprintf(&b, "%s -d '%s'\n", line, fishEscape(f.Desc))
		}
		switch {
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c md2pptx %s -a '(__fish_complete_suffix %s)'\n", cond, strings.Join(suffixes(c.FilePattern), " "))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c md2pptx %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}
	return b.String()
}

var fishEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishEscape(s string) string { return fishEscaper.Replace(s) }

// powerShellScript renders a native argument completer.
func powerShellScript(commands []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for md2pptx\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2pptx -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range commands {
		var names []string
		for _, f := range c.Flags {
			for _, n := range f.names() {
				names = append(names, "'"+n+"'")
			}
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(names, ", "))
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, c := range commands {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			quoted := make([]string, len(f.Values))
			for i, v := range f.Values {
				quoted[i] = "'" + psEscape(v) + "'"
			}
			for _, n := range f.names() {
				fmt.Fprintf(&b, "        '%s' = @(%s)\n", n, strings.Join(quoted, ", "))
			}
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $arguments = @{\n")
	for _, c := range commands {
		if len(c.Args) == 0 {
			continue
		}
		quoted := make([]string, len(c.Args))
		for i, a := range c.Args {
			quoted[i] = "'" + a + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '') { $elements = @($elements | Select-Object -SkipLast 1) }

    $complete = {
        param($candidates, $type)
        $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, $type, $_)
        }
    }

    if ($elements.Count -le 1) {
        $commands.Keys | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'Command', $commands[$_])
        }
        return
    }

    $command = $elements[1]
    $previous = $elements[-1]
    if ($values.ContainsKey($previous)) {
        & $complete $values[$previous] 'ParameterValue'
        return
    }
    if ($wordToComplete -like '-*' -and $flags.ContainsKey($command)) {
        & $complete $flags[$command] 'ParameterName'
        return
    }
    if ($arguments.ContainsKey($command)) {
        & $complete $arguments[$command] 'ParameterValue'
    }
}
`)
	return b.String()
}

func psEscape(s string) string { return strings.ReplaceAll(s, "'", "''") }
