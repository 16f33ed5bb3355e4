package gen

import "text/template"

// Header marks files written by the generator.
const Header = "// Code generated by goswitch. DO NOT EDIT."

var fileTmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"params": params,
	"args":   args,
}).Parse(`{{.Header}}

package {{.Package}}

import goswitch "{{.RuntimeImport}}"

// Match{{.Union}} calls the continuation matching the case of {{.Subject}} and returns its result.
func Match{{.Union}}[{{.TypeParamsDecl}}{{.R}} any]({{.Subject}} {{.UnionExpr}}{{params .Cases .R}}) {{.R}} {
	{{template "switch" .}}
	{{- range .Cases}}
	case {{.Label}}:
		return {{.Param}}({{.Arg}})
	{{- end}}
	default:
		panic(goswitch.UnhandledVariant("{{.Union}}", {{.Subject}}))
	}
}

// Match{{.Union}}Async is Match{{.Union}} with asynchronous continuations. Only the selected continuation is invoked.
func Match{{.Union}}Async[{{.TypeParamsDecl}}{{.R}} any]({{.Subject}} {{.UnionExpr}}{{params .Cases (printf "goswitch.Task[%s]" .R)}}) goswitch.Task[{{.R}}] {
	{{template "switch" .}}
	{{- range .Cases}}
	case {{.Label}}:
		return {{.Param}}({{.Arg}})
	{{- end}}
	default:
		return goswitch.Failed[{{.R}}](goswitch.UnhandledVariant("{{.Union}}", {{.Subject}}))
	}
}

// Match{{.Union}}Task awaits {{.Subject}} and applies Match{{.Union}}.
func Match{{.Union}}Task[{{.TypeParamsDecl}}{{.R}} any]({{.Subject}} goswitch.Task[{{.UnionExpr}}]{{params .Cases .R}}) goswitch.Task[{{.R}}] {
	return goswitch.Then({{.Subject}}, func(v {{.UnionExpr}}) {{.R}} {
		return Match{{.Union}}[{{.TypeArgs}}{{.R}}](v{{args .Cases}})
	})
}

// Match{{.Union}}TaskAsync awaits {{.Subject}} and applies Match{{.Union}}Async.
func Match{{.Union}}TaskAsync[{{.TypeParamsDecl}}{{.R}} any]({{.Subject}} goswitch.Task[{{.UnionExpr}}]{{params .Cases (printf "goswitch.Task[%s]" .R)}}) goswitch.Task[{{.R}}] {
	return goswitch.ThenAsync({{.Subject}}, func(v {{.UnionExpr}}) goswitch.Task[{{.R}}] {
		return Match{{.Union}}Async[{{.TypeArgs}}{{.R}}](v{{args .Cases}})
	})
}

// Switch{{.Union}} calls the continuation matching the case of {{.Subject}}.
func Switch{{.Union}}{{.SwitchTypeParams}}({{.Subject}} {{.UnionExpr}}{{params .Cases ""}}) {
	{{template "switch" .}}
	{{- range .Cases}}
	case {{.Label}}:
		{{.Param}}({{.Arg}})
	{{- end}}
	default:
		panic(goswitch.UnhandledVariant("{{.Union}}", {{.Subject}}))
	}
}

// Switch{{.Union}}Async is Switch{{.Union}} with asynchronous continuations.
func Switch{{.Union}}Async{{.SwitchTypeParams}}({{.Subject}} {{.UnionExpr}}{{params .Cases "goswitch.Action"}}) goswitch.Action {
	{{template "switch" .}}
	{{- range .Cases}}
	case {{.Label}}:
		return {{.Param}}({{.Arg}})
	{{- end}}
	default:
		return goswitch.FailedAction(goswitch.UnhandledVariant("{{.Union}}", {{.Subject}}))
	}
}

// Switch{{.Union}}Task awaits {{.Subject}} and applies Switch{{.Union}}.
func Switch{{.Union}}Task{{.SwitchTypeParams}}({{.Subject}} goswitch.Task[{{.UnionExpr}}]{{params .Cases ""}}) goswitch.Action {
	return goswitch.ThenDo({{.Subject}}, func(v {{.UnionExpr}}) {
		Switch{{.Union}}{{.SwitchTypeArgs}}(v{{args .Cases}})
	})
}

// Switch{{.Union}}TaskAsync awaits {{.Subject}} and applies Switch{{.Union}}Async.
func Switch{{.Union}}TaskAsync{{.SwitchTypeParams}}({{.Subject}} goswitch.Task[{{.UnionExpr}}]{{params .Cases "goswitch.Action"}}) goswitch.Action {
	return goswitch.ThenDoAsync({{.Subject}}, func(v {{.UnionExpr}}) goswitch.Action {
		return Switch{{.Union}}Async{{.SwitchTypeArgs}}(v{{args .Cases}})
	})
}
{{define "switch"}}{{if .Enum}}switch {{.Subject}} {{"{"}}{{else}}switch v := {{.Subject}}.(type) {{"{"}}{{end}}{{end}}`))
