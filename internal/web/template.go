package web

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="utf-8">
  <title>caixa2alterdata</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    .error { color: #b00020; }
    table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
    th, td { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
    .downloads a { display: inline-block; margin-right: 1rem; }
  </style>
</head>
<body>
  <h1>Conversor de Livro Caixa para Alterdata</h1>
  <p>Envie uma ou mais planilhas (.xlsx, .xlsm, .xls, .csv) para padronização.</p>

  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}

  <form method="post" enctype="multipart/form-data">
    <input type="file" name="files" multiple required>
    <button type="submit">Converter</button>
  </form>

  {{with .Summary}}
  <h2>Resumo</h2>
  <ul>
    <li>Arquivos encontrados: {{.FilesFound}}</li>
    <li>Linhas exportadas: {{.RowsExported}}</li>
    <li>Inconsistências: {{if .HasIssues}}sim{{else}}não{{end}}</li>
  </ul>
  {{end}}

  {{if .Downloads}}
  <h2>Downloads</h2>
  <p class="downloads">
    {{range $name, $url := .Downloads}}<a href="{{$url}}">{{$name}}</a>{{end}}
  </p>
  <p>Os arquivos ficam disponíveis por 10 minutos.</p>
  {{end}}

  {{if .Issues}}
  <h2>Inconsistências</h2>
  <table>
    <tr><th>Arquivo</th><th>Aba</th><th>Erro</th></tr>
    {{range .Issues}}<tr><td>{{.File}}</td><td>{{.Sheet}}</td><td>{{.Message}}</td></tr>{{end}}
  </table>
  {{end}}
</body>
</html>
`))
