// Package tastegraph provides a Go client that runs the taste graph orchestrators in-process.
//
// The client talks to the external taste graph directly; no tastegraph server is needed.
//
//	client, _ := tastegraph.New(
//	    tastegraph.WithBaseURL("https://hackathon.api.qloo.com"),
//	    tastegraph.WithAPIKey(os.Getenv("TASTEGRAPH_API_KEY")),
//	)
//
//	goal, _ := client.EnhanceGoal(ctx, "learn to cook", tastegraph.TasteProfile{
//	    Interests: []string{"italian food", "jazz"},
//	}, tastegraph.ProjectContext{GoalCategory: "cooking"})
//
//	disc, _ := client.Discover(ctx, []string{"jazz"}, "travel", tastegraph.ProjectContext{})
//	for _, c := range disc.SurpriseConnections {
//	    fmt.Println(c.Explanation)
//	}
package tastegraph
