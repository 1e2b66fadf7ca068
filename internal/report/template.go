package report

// dashboardTemplate is the full self-contained document: embedded styles and
// the expand/collapse script, no external assets.
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Portfolio Analysis Dashboard - Peter Lynch Style</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 20px; background-color: #f8f9fa; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px; margin-bottom: 20px; }
        .header h1 { margin: 0 0 5px 0; }
        .header p { margin: 0; opacity: 0.85; }
        .portfolio-summary { display: flex; gap: 20px; margin-bottom: 20px; }
        .summary-card { background: white; border-radius: 10px; padding: 20px; flex: 1; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        .summary-card h3 { margin: 0 0 10px 0; font-size: 14px; color: #6c757d; text-transform: uppercase; }
        .summary-card .value { font-size: 28px; font-weight: 600; }
        .stocks-table { background: white; border-radius: 10px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        table { width: 100%; border-collapse: collapse; }
        th { background: #f1f3f5; text-align: left; padding: 12px 16px; font-size: 13px; color: #495057; text-transform: uppercase; }
        td { padding: 12px 16px; border-top: 1px solid #e9ecef; }
        .stock-row { cursor: pointer; }
        .stock-row:hover { background: #f8f9fa; }
        .stock-row.alert-gain td { background: #fff8e1; }
        .stock-row.alert-loss td { background: #fdecea; }
        .recommendation { font-weight: 600; padding: 3px 10px; border-radius: 12px; font-size: 13px; }
        .rec-BUY { background: #d4edda; color: #155724; }
        .rec-HOLD { background: #e2e3e5; color: #383d41; }
        .rec-TRIM { background: #fff3cd; color: #856404; }
        .rec-SELL { background: #f8d7da; color: #721c24; }
        .gain-positive { color: #28a745; }
        .gain-negative { color: #dc3545; }
        .expanded-details { display: none; }
        .expanded-details.show { display: table-row; }
        .expanded-details td { background: #fbfbfd; padding: 16px 24px; }
        .detail-section { margin-bottom: 12px; }
        .detail-section h4 { margin: 0 0 6px 0; font-size: 13px; color: #495057; text-transform: uppercase; }
        .detail-section ul { margin: 0; padding-left: 18px; }
        .flag-red { color: #dc3545; }
        .flag-green { color: #28a745; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Portfolio Analysis Dashboard</h1>
        <p>Peter Lynch Style Analysis - Updated: {{.Timestamp}}</p>
    </div>

    <div class="portfolio-summary">
        <div class="summary-card">
            <h3>Total Portfolio Value</h3>
            <div class="value">{{money .TotalValue}}</div>
        </div>
        <div class="summary-card">
            <h3>Stocks with Alerts</h3>
            <div class="value" style="color: #dc3545;">{{.TotalAlerts}} &#128680;</div>
        </div>
    </div>

    <div class="stocks-table">
        <table>
            <thead>
                <tr>
                    <th>Stock</th>
                    <th>Price/Change</th>
                    {{- if .IncludePremarket}}
                    <th>Pre-market</th>
                    {{- end}}
                    <th>Position</th>
                    <th>Gain %</th>
                    <th>Alerts</th>
                    <th>Lynch Score</th>
                    <th>Next Events</th>
                </tr>
            </thead>
            <tbody>
                {{- range .Rows}}
                <tr class="stock-row {{.RowClass}}" onclick="toggleDetails('{{.DisplayTicker}}')">
                    <td>{{.DisplayTicker}}</td>
                    <td>{{money .CurrentPrice}} ({{percent .RegularPercent}})</td>
                    {{- if $.IncludePremarket}}
                    <td>{{percent .PremarketPercent}}</td>
                    {{- end}}
                    <td>{{money .PositionValue}}</td>
                    <td class="{{if ge .GainPercent 0.0}}gain-positive{{else}}gain-negative{{end}}">{{percent .GainPercent}}</td>
                    <td>{{.AlertCount}}</td>
                    <td><span class="recommendation rec-{{.Recommendation}}">{{.Recommendation}}</span></td>
                    <td>{{if .UpcomingCatalysts}}{{(index .UpcomingCatalysts 0).Date}}: {{(index .UpcomingCatalysts 0).Event}}{{else}}&mdash;{{end}}</td>
                </tr>
                <tr class="expanded-details" id="{{.DisplayTicker}}-details">
                    <td colspan="{{if $.IncludePremarket}}8{{else}}7{{end}}">
                        <div class="detail-section">
                            <h4>Recent News</h4>
                            <ul>{{range .RecentNews}}<li>{{.}}</li>{{end}}</ul>
                        </div>
                        <div class="detail-section">
                            <h4>Fundamental Health</h4>
                            Revenue: {{.FundamentalHealth.RevenueTrend}} &middot;
                            Earnings: {{.FundamentalHealth.EarningsTrend}} &middot;
                            Debt: {{.FundamentalHealth.DebtSituation}} &middot;
                            Position: {{.FundamentalHealth.CompetitivePosition}}
                        </div>
                        {{- if .RedFlags}}
                        <div class="detail-section">
                            <h4 class="flag-red">Red Flags</h4>
                            <ul>{{range .RedFlags}}<li class="flag-red">{{.}}</li>{{end}}</ul>
                        </div>
                        {{- end}}
                        {{- if .GreenFlags}}
                        <div class="detail-section">
                            <h4 class="flag-green">Green Flags</h4>
                            <ul>{{range .GreenFlags}}<li class="flag-green">{{.}}</li>{{end}}</ul>
                        </div>
                        {{- end}}
                        {{- if .UpcomingCatalysts}}
                        <div class="detail-section">
                            <h4>Upcoming Catalysts</h4>
                            <ul>{{range .UpcomingCatalysts}}<li>{{.Date}}: {{.Event}}</li>{{end}}</ul>
                        </div>
                        {{- end}}
                        <div class="detail-section">
                            <h4>Insider Activity</h4>
                            Buying: {{.InsiderActivity.RecentBuying}} &middot;
                            Selling: {{.InsiderActivity.RecentSelling}} &middot;
                            Sentiment: {{.InsiderActivity.NetSentiment}}
                        </div>
                        {{- if .Competitors}}
                        <div class="detail-section">
                            <h4>Competitors</h4>
                            {{range $i, $c := .Competitors}}{{if $i}}, {{end}}{{$c}}{{end}}
                        </div>
                        {{- end}}
                        <div class="detail-section">
                            <h4>PEG Analysis</h4>
                            PEG {{.CurrentPEG}} &middot; {{.PEGAnalysis.Assessment}}{{if .PEGAnalysis.Reasoning}} &middot; {{.PEGAnalysis.Reasoning}}{{end}}
                        </div>
                        <div class="detail-section">
                            <h4>Lynch Reasoning</h4>
                            {{.LynchScore.Reasoning}}
                            {{- if .LynchScore.PriceTarget}} (target: {{.LynchScore.PriceTarget}}, risk: {{.LynchScore.RiskLevel}}){{end}}
                        </div>
                    </td>
                </tr>
                {{- end}}
            </tbody>
        </table>
    </div>

    <script>
        function toggleDetails(stockId) {
            const details = document.getElementById(stockId + '-details');
            if (details.classList.contains('show')) {
                details.classList.remove('show');
            } else {
                document.querySelectorAll('.expanded-details.show').forEach(el => {
                    el.classList.remove('show');
                });
                details.classList.add('show');
            }
        }
    </script>
</body>
</html>
`
